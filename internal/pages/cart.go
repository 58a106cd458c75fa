package pages

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sauceDemo/internal/browser"
)

var (
	checkoutButton   = browser.TestID("checkout")
	continueShopping = browser.TestID("continue-shopping")
	quantityLabel    = browser.TestID("cart-quantity-label")
	descriptionLabel = browser.TestID("cart-desc-label")
	cartItems        = browser.CSS(".cart_item")
	cartItemNames    = browser.CSS(".inventory_item_name")
	cartItemPrices   = browser.CSS(".inventory_item_price")
	cartQuantities   = browser.CSS(".cart_quantity")
	emptyCartMessage = browser.CSS(".cart_item_label, .empty-cart, .no-items, .cart-empty-message")
)

type CartPage struct {
	base
}

func newCartPage(d Deps) *CartPage {
	return &CartPage{base: newBase(d, "cart")}
}

func (p *CartPage) IsLoaded(ctx context.Context) bool {
	return p.loaded(ctx, "cart.html", "Your Cart")
}

func (p *CartPage) AreHeadersDisplayed(ctx context.Context) bool {
	qty := p.textIs(ctx, quantityLabel, "QTY")
	desc := p.textIs(ctx, descriptionLabel, "Description")
	p.log.Info("Заголовки корзины", zap.Bool("qty", qty), zap.Bool("description", desc))
	return qty && desc
}

// ItemCount считает позиции после отрисовки заголовка страницы.
func (p *CartPage) ItemCount(ctx context.Context) int {
	p.displayed(ctx, title)
	count := p.act.Count(ctx, cartItems)
	p.log.Info("Позиций в корзине", zap.Int("count", count))
	return count
}

// ContainsItems проверяет, что каждое название встречается среди позиций.
func (p *CartPage) ContainsItems(ctx context.Context, names ...string) bool {
	p.displayed(ctx, title)
	texts, err := p.act.Texts(ctx, cartItemNames)
	if err != nil {
		return false
	}

	for _, name := range names {
		found := false
		for _, text := range texts {
			if strings.Contains(text, name) {
				found = true
				break
			}
		}
		if !found {
			p.log.Warn("Товара нет в корзине", zap.String("item", name))
			return false
		}
	}
	return true
}

func (p *CartPage) ItemPrices(ctx context.Context) ([]string, error) {
	return p.act.Texts(ctx, cartItemPrices)
}

func (p *CartPage) ItemQuantities(ctx context.Context) ([]string, error) {
	return p.act.Texts(ctx, cartQuantities)
}

func (p *CartPage) Checkout(ctx context.Context) (*CheckoutStepOnePage, error) {
	p.log.Info("Переход к оформлению")
	if err := p.act.ClickSafely(ctx, checkoutButton); err != nil {
		return nil, err
	}
	return newCheckoutStepOnePage(p.deps), nil
}

func (p *CartPage) ContinueShopping(ctx context.Context) (*InventoryPage, error) {
	p.log.Info("Возврат к покупкам")
	if err := p.act.ClickSafely(ctx, continueShopping); err != nil {
		return nil, err
	}
	return newInventoryPage(p.deps), nil
}

func (p *CartPage) IsCheckoutAvailable(ctx context.Context) bool {
	ok := p.displayed(ctx, checkoutButton) && p.act.IsEnabled(ctx, checkoutButton)
	p.log.Info("Кнопка оформления доступна", zap.Bool("available", ok))
	return ok
}

func (p *CartPage) IsEmpty(ctx context.Context) bool {
	return p.ItemCount(ctx) == 0
}

// EmptyMessage возвращает текст сообщения о пустой корзине или "".
func (p *CartPage) EmptyMessage(ctx context.Context) string {
	if !p.act.IsVisible(ctx, emptyCartMessage) {
		return ""
	}
	return p.text(ctx, emptyCartMessage)
}
