package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/DRSN-tech/cart-service/pkg/logger"
	"github.com/shopspring/decimal"
)

// CartUseCase реализует бизнес-логику корзины: упорядоченный список позиций
// в памяти с полной перезаписью снапшота в хранилище на каждой мутации.
// Локальное состояние авторитетно; фоновые вызовы витрины его не откатывают.
type CartUseCase struct {
	mu          sync.Mutex
	items       []domain.LineItem
	repo        SnapshotRepository
	storefront  StorefrontInfra
	producer    EventProducer
	logger      logger.Logger
	userID      string
	syncTimeout time.Duration
}

func NewCartUC(
	ctx context.Context,
	repo SnapshotRepository,
	storefront StorefrontInfra,
	producer EventProducer,
	logger logger.Logger,
	userID string,
	syncTimeout time.Duration,
) *CartUseCase {
	const op = "usecase.NewCartUC"

	uc := &CartUseCase{
		repo:        repo,
		storefront:  storefront,
		producer:    producer,
		logger:      logger,
		userID:      userID,
		syncTimeout: syncTimeout,
	}

	// Поврежденный или недоступный снапшот не фатален: корзина стартует пустой.
	items, err := repo.Load(ctx)
	if err != nil {
		logger.Warnf("failed to load cart snapshot, starting empty: %v", e.Wrap(op, err))
		items = nil
	}
	uc.items = items

	return uc
}

// AddItem валидирует товар и добавляет его в корзину: позиция с тем же
// идентификатором получает количество +1, новая добавляется в конец с
// количеством 1. Снапшот сохраняется синхронно, зеркалирование на витрину
// уходит в фон.
func (c *CartUseCase) AddItem(ctx context.Context, req *AddItemReq) (*LineItemInfo, error) {
	const op = "CartUseCase.AddItem"

	price := domain.ParsePrice(req.Price)
	if err := validateItem(req.Title, req.Image, price); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	id := domain.ItemID(req.Title, price)
	idx := c.indexOf(id)
	if idx >= 0 {
		c.items[idx].Quantity++
	} else {
		c.items = append(c.items, *domain.NewLineItem(req.Title, price, req.Image))
		idx = len(c.items) - 1
	}
	item := c.items[idx]

	if err := c.repo.Save(ctx, c.items); err != nil {
		c.mu.Unlock()
		// Мутация остается в памяти: следующее успешное сохранение
		// перезапишет снапшот целиком.
		return nil, e.Wrap(op, err)
	}
	c.mu.Unlock()

	c.dispatch("sync add", func(bgCtx context.Context) error {
		return c.storefront.SyncAdd(bgCtx, &item)
	})
	c.publishEvent(ActionAdd, item.ID, item.Title, item.Quantity)

	return NewLineItemInfo(&item), nil
}

// ChangeQuantity увеличивает или уменьшает количество позиции по ее месту в
// списке. Уменьшение до нуля удаляет позицию. Индекс за пределами списка —
// no-op.
func (c *CartUseCase) ChangeQuantity(ctx context.Context, index int, action Action) error {
	const op = "CartUseCase.ChangeQuantity"

	if action != ActionIncrease && action != ActionDecrease {
		return e.Wrap(op, e.ErrUnknownAction)
	}

	c.mu.Lock()
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return nil
	}

	itemID := c.items[index].ID
	title := c.items[index].Title
	if action == ActionIncrease {
		c.items[index].Quantity++
	} else {
		c.items[index].Quantity--
		if c.items[index].Quantity <= 0 {
			c.items = append(c.items[:index], c.items[index+1:]...)
		}
	}
	quantity := 0
	if index < len(c.items) && c.items[index].ID == itemID {
		quantity = c.items[index].Quantity
	}

	if err := c.repo.Save(ctx, c.items); err != nil {
		c.mu.Unlock()
		return e.Wrap(op, err)
	}
	c.mu.Unlock()

	c.dispatch("sync "+string(action), func(bgCtx context.Context) error {
		return c.storefront.SyncAction(bgCtx, itemID, action)
	})
	c.publishEvent(action, itemID, title, quantity)

	return nil
}

// RemoveItem удаляет позицию по месту в списке. Индекс за пределами списка —
// no-op.
func (c *CartUseCase) RemoveItem(ctx context.Context, index int) error {
	const op = "CartUseCase.RemoveItem"

	c.mu.Lock()
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return nil
	}

	itemID := c.items[index].ID
	title := c.items[index].Title
	c.items = append(c.items[:index], c.items[index+1:]...)

	if err := c.repo.Save(ctx, c.items); err != nil {
		c.mu.Unlock()
		return e.Wrap(op, err)
	}
	c.mu.Unlock()

	c.dispatch("sync remove", func(bgCtx context.Context) error {
		return c.storefront.SyncAction(bgCtx, itemID, ActionRemove)
	})
	c.publishEvent(ActionRemove, itemID, title, 0)

	return nil
}

// Clear опустошает корзину и сохраняет пустой снапшот.
func (c *CartUseCase) Clear(ctx context.Context) error {
	const op = "CartUseCase.Clear"

	c.mu.Lock()
	c.items = nil
	if err := c.repo.Save(ctx, c.items); err != nil {
		c.mu.Unlock()
		return e.Wrap(op, err)
	}
	c.mu.Unlock()

	c.publishEvent(ActionClear, "", "", 0)

	return nil
}

// Checkout синхронно отправляет заказ на витрину. При успехе корзина
// опустошается; при любой ошибке корзина и снапшот остаются нетронутыми,
// чтобы пользователь мог повторить оформление.
func (c *CartUseCase) Checkout(ctx context.Context) (*CheckoutRes, error) {
	const op = "CartUseCase.Checkout"

	c.mu.Lock()
	items := make([]domain.LineItem, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	total := subtotalOf(items)
	order := domain.NewOrder(items, total, c.userID)

	if err := c.storefront.SubmitOrder(ctx, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	c.items = nil
	if err := c.repo.Save(ctx, c.items); err != nil {
		// Заказ уже принят витриной, откатывать нечего.
		c.logger.Warnf("failed to persist cleared cart: %v", e.Wrap(op, err))
	}
	c.mu.Unlock()

	c.publishEvent(ActionCheckout, "", "", len(items))

	return NewCheckoutRes(total, len(items), c.userID), nil
}

// Refresh — явный pull: при успешном ответе витрины локальная корзина целиком
// заменяется серверной версией и снапшот пересохраняется (last-writer-wins).
// Любая ошибка сети или отсутствие списка позиций оставляет корзину как есть.
func (c *CartUseCase) Refresh(ctx context.Context) error {
	const op = "CartUseCase.Refresh"

	items, err := c.storefront.PullCart(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	c.mu.Lock()
	c.items = items
	if err := c.repo.Save(ctx, c.items); err != nil {
		c.mu.Unlock()
		return e.Wrap(op, err)
	}
	c.mu.Unlock()

	return nil
}

// Snapshot возвращает копию текущего списка позиций в порядке добавления.
func (c *CartUseCase) Snapshot() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Subtotal возвращает сумму price*quantity по всем позициям без округления.
func (c *CartUseCase) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	return subtotalOf(c.items)
}

// TotalQuantity возвращает суммарное количество всех позиций (для бейджа).
func (c *CartUseCase) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// indexOf ищет позицию по идентификатору. Вызывается под мьютексом.
func (c *CartUseCase) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// dispatch запускает фоновый best-effort вызов с собственным таймаутом.
// Результат отбрасывается: вызов никогда не блокирует мутацию и не
// откатывает локальное состояние.
func (c *CartUseCase) dispatch(name string, call func(ctx context.Context) error) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), c.syncTimeout)
		defer cancel()

		if err := call(bgCtx); err != nil {
			c.logger.Warnf("%s failed: %v", name, err)
		}
	}()
}

// publishEvent зеркалирует мутацию в шину событий, если продюсер настроен.
func (c *CartUseCase) publishEvent(action Action, itemID string, title string, quantity int) {
	if c.producer == nil {
		return
	}

	event := NewCartEvent(action, itemID, title, quantity)
	c.dispatch("publish "+string(action)+" event", func(bgCtx context.Context) error {
		return c.producer.WriteEvent(bgCtx, event)
	})
}

func subtotalOf(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}
	return total
}

// validateItem проверяет корректность входных данных добавляемого товара.
func validateItem(title string, image string, price decimal.Decimal) error {
	if strings.TrimSpace(title) == "" {
		return e.ErrTitleRequired
	}

	if strings.TrimSpace(image) == "" {
		return e.ErrImageRequired
	}

	if !price.IsPositive() {
		return e.ErrPriceMustBePositive
	}

	return nil
}
