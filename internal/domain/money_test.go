package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice_Strings(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "12.50", "12.5"},
		{"currency symbol", "$12.50", "12.5"},
		{"thousands separator", "$1,299.99", "1299.99"},
		{"trailing text", "19.99 USD", "19.99"},
		{"second dot cut", "12.5.3", "12.5"},
		{"trailing dot", "10.", "10"},
		{"leading dot", ".5", "0.5"},
		{"no digits", "abc", "0"},
		{"empty", "", "0"},
		{"only dot", ".", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePrice(tc.in)
			want, _ := decimal.NewFromString(tc.want)
			if !got.Equal(want) {
				t.Errorf("ParsePrice(%q) = %s, want %s", tc.in, got, want)
			}
		})
	}
}

func TestParsePrice_Numbers(t *testing.T) {
	if got := ParsePrice(9.99); !got.Equal(decimal.NewFromFloat(9.99)) {
		t.Errorf("ParsePrice(9.99) = %s", got)
	}
	if got := ParsePrice(42); !got.Equal(decimal.NewFromInt(42)) {
		t.Errorf("ParsePrice(42) = %s", got)
	}
	if got := ParsePrice(nil); !got.IsZero() {
		t.Errorf("ParsePrice(nil) = %s, want 0", got)
	}
	if got := ParsePrice(true); !got.IsZero() {
		t.Errorf("ParsePrice(true) = %s, want 0", got)
	}
}

func TestItemID_FormattingMerges(t *testing.T) {
	// "$12.50" и 12.5 обозначают один товар
	fromString := ItemID("Widget", ParsePrice("$12.50"))
	fromNumber := ItemID("Widget", ParsePrice(12.5))
	if fromString != fromNumber {
		t.Errorf("ids differ: %q vs %q", fromString, fromNumber)
	}
	if fromString != "Widget_12.5" {
		t.Errorf("unexpected id: %q", fromString)
	}
}

func TestNormalizePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.50", "12.5"},
		{"10.00", "10"},
		{"0.5", "0.5"},
		{"1299.99", "1299.99"},
	}

	for _, tc := range cases {
		d, _ := decimal.NewFromString(tc.in)
		if got := NormalizePrice(d); got != tc.want {
			t.Errorf("NormalizePrice(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	item := NewLineItem("Widget", decimal.NewFromFloat(9.99), "/img/widget.png")
	item.Quantity = 3

	want := decimal.NewFromFloat(29.97)
	if got := item.LineTotal(); !got.Equal(want) {
		t.Errorf("LineTotal() = %s, want %s", got, want)
	}
}
