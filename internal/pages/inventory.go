package pages

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sauceDemo/internal/browser"
)

var (
	cartLink        = browser.TestID("shopping-cart-link")
	addBackpack     = browser.TestID("add-to-cart-sauce-labs-backpack")
	addBikeLight    = browser.TestID("add-to-cart-sauce-labs-bike-light")
	removeBackpack  = browser.TestID("remove-sauce-labs-backpack")
	removeBikeLight = browser.TestID("remove-sauce-labs-bike-light")
	cartBadge       = browser.CSS(".shopping_cart_badge")
	backpackTitle   = browser.CSS("[data-test='item-4-title-link'] [data-test='inventory-item-name']")
	bikeLightTitle  = browser.CSS("[data-test='item-0-title-link'] [data-test='inventory-item-name']")
	inventoryPrices = browser.CSS(".inventory_item_price")
)

const (
	Backpack  = "Sauce Labs Backpack"
	BikeLight = "Sauce Labs Bike Light"
)

type InventoryPage struct {
	base
}

func newInventoryPage(d Deps) *InventoryPage {
	return &InventoryPage{base: newBase(d, "inventory")}
}

func (p *InventoryPage) IsLoaded(ctx context.Context) bool {
	return p.displayed(ctx, title) && p.act.WaitForURL(ctx, "inventory.html") == nil
}

func (p *InventoryPage) IsTitleDisplayed(ctx context.Context) bool {
	return p.textIs(ctx, title, "Products")
}

func (p *InventoryPage) AddBackpack(ctx context.Context) error {
	p.log.Info("Добавление в корзину", zap.String("item", Backpack))
	return p.act.ClickSafely(ctx, addBackpack)
}

func (p *InventoryPage) AddBikeLight(ctx context.Context) error {
	p.log.Info("Добавление в корзину", zap.String("item", BikeLight))
	return p.act.ClickSafely(ctx, addBikeLight)
}

// IsBackpackInCart смотрит на кнопку Remove, которая заменяет Add to cart.
func (p *InventoryPage) IsBackpackInCart(ctx context.Context) bool {
	return p.displayed(ctx, removeBackpack)
}

func (p *InventoryPage) IsBikeLightInCart(ctx context.Context) bool {
	return p.displayed(ctx, removeBikeLight)
}

// CartBadgeCount возвращает "0", если значка нет: пустая корзина его не рисует.
func (p *InventoryPage) CartBadgeCount(ctx context.Context) string {
	if !p.act.IsVisible(ctx, cartBadge) {
		p.log.Info("Значка корзины нет")
		return "0"
	}
	count := p.text(ctx, cartBadge)
	p.log.Info("Товаров в корзине", zap.String("count", count))
	return count
}

func (p *InventoryPage) OpenCart(ctx context.Context) (*CartPage, error) {
	p.log.Info("Переход в корзину")
	if err := p.act.ClickSafely(ctx, cartLink); err != nil {
		return nil, err
	}
	return newCartPage(p.deps), nil
}

func (p *InventoryPage) AreProductNamesDisplayed(ctx context.Context) bool {
	backpack := p.displayed(ctx, backpackTitle) && strings.Contains(p.text(ctx, backpackTitle), Backpack)
	bikeLight := p.displayed(ctx, bikeLightTitle) && strings.Contains(p.text(ctx, bikeLightTitle), BikeLight)
	p.log.Info("Названия товаров", zap.Bool("backpack", backpack), zap.Bool("bikeLight", bikeLight))
	return backpack && bikeLight
}

// Prices возвращает цены всех товаров витрины в порядке на странице.
func (p *InventoryPage) Prices(ctx context.Context) ([]string, error) {
	if err := p.act.WaitVisible(ctx, inventoryPrices); err != nil {
		return nil, err
	}
	return p.act.Texts(ctx, inventoryPrices)
}
