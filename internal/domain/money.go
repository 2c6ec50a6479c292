package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice нормализует цену из числового значения или строки с валютным
// форматированием (символы валют, разделители тысяч). Любой вход, не содержащий
// числа, дает ноль; функция детерминирована и никогда не паникует.
func ParsePrice(v any) decimal.Decimal {
	switch p := v.(type) {
	case decimal.Decimal:
		return p
	case float64:
		return decimal.NewFromFloat(p)
	case float32:
		return decimal.NewFromFloat32(p)
	case int:
		return decimal.NewFromInt(int64(p))
	case int32:
		return decimal.NewFromInt(int64(p))
	case int64:
		return decimal.NewFromInt(p)
	case string:
		return parsePriceString(p)
	default:
		return decimal.Zero
	}
}

// parsePriceString отбрасывает все символы, кроме цифр и точки, и берет самый
// длинный корректный числовой префикс: "$1,299.99" -> 1299.99, "12.5.3" -> 12.5.
func parsePriceString(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	var (
		end       int
		dotSeen   bool
		digitSeen bool
	)
	for end < len(cleaned) {
		if cleaned[end] == '.' {
			if dotSeen {
				break
			}
			dotSeen = true
		} else {
			digitSeen = true
		}
		end++
	}
	if !digitSeen {
		return decimal.Zero
	}

	prefix := strings.TrimSuffix(cleaned[:end], ".")
	if strings.HasPrefix(prefix, ".") {
		prefix = "0" + prefix
	}

	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// NormalizePrice возвращает кратчайшую десятичную запись цены ("12.50" и 12.5
// дают одинаковый результат). Используется при выводе идентификатора позиции,
// чтобы одинаковые товары с разным форматированием цены сливались.
func NormalizePrice(d decimal.Decimal) string {
	return strconv.FormatFloat(d.InexactFloat64(), 'f', -1, 64)
}
