package pages

import (
	"context"
	"errors"
	"fmt"

	"sauceDemo/internal/fixtures"
)

// Order: входные данные сквозного сценария покупки.
type Order struct {
	Username string
	Password string
	Customer CheckoutInfo
	// Ожидаемые суммы без знака доллара, например "39.98".
	Subtotal string
	Tax      string
	Total    string
}

// OrderFrom собирает заказ из тестовых данных.
func OrderFrom(d *fixtures.Data) Order {
	creds := d.Credentials()
	pricing := d.Pricing()
	return Order{
		Username: creds.Username,
		Password: creds.Password,
		Customer: CheckoutInfo(d.Checkout()),
		Subtotal: pricing.Subtotal,
		Tax:      pricing.Tax,
		Total:    pricing.Total,
	}
}

// Flow: сквозной сценарий от стартовой страницы магазина.
type Flow struct {
	Name string
	Run  func(ctx context.Context, d Deps, baseURL string, o Order) error
}

// SmokeFlows: сценарии команды run.
var SmokeFlows = []Flow{
	{Name: "shopping flow", Run: PlaceOrder},
	{Name: "postal code required", Run: CheckPostalCodeRequired},
}

// signIn открывает магазин и входит, закрывая попапы на витрине.
func signIn(ctx context.Context, d Deps, baseURL string, o Order) (*InventoryPage, error) {
	login, err := Open(ctx, d, baseURL)
	if err != nil {
		return nil, err
	}
	if !login.IsDisplayed(ctx) {
		return nil, errors.New("страница входа не отображается")
	}

	inventory, err := login.Login(ctx, o.Username, o.Password)
	if err != nil {
		return nil, err
	}
	inventory.DismissPopups(ctx)
	if !inventory.IsLoaded(ctx) {
		if text, err := login.ErrorText(ctx); err == nil {
			return nil, fmt.Errorf("вход не выполнен: %s", text)
		}
		return nil, errors.New("витрина не загрузилась после входа")
	}
	return inventory, nil
}

// PlaceOrder кладёт рюкзак и фонарь в корзину, оформляет заказ и сверяет суммы.
func PlaceOrder(ctx context.Context, d Deps, baseURL string, o Order) error {
	inventory, err := signIn(ctx, d, baseURL, o)
	if err != nil {
		return err
	}

	if err := inventory.AddBackpack(ctx); err != nil {
		return err
	}
	if err := inventory.AddBikeLight(ctx); err != nil {
		return err
	}
	if n := inventory.CartBadgeCount(ctx); n != "2" {
		return fmt.Errorf("в значке корзины %s, ожидалось 2", n)
	}

	cart, err := inventory.OpenCart(ctx)
	if err != nil {
		return err
	}
	if !cart.IsLoaded(ctx) || !cart.ContainsItems(ctx, Backpack, BikeLight) {
		return errors.New("в корзине нет выбранных товаров")
	}

	stepOne, err := cart.Checkout(ctx)
	if err != nil {
		return err
	}
	if err := stepOne.Fill(ctx, o.Customer); err != nil {
		return err
	}
	stepTwo, err := stepOne.Continue(ctx)
	if err != nil {
		return err
	}
	if !stepTwo.IsLoaded(ctx) {
		return fmt.Errorf("обзор заказа не открылся: %s", stepOne.ErrorText(ctx))
	}

	checks := []struct {
		name   string
		verify func(context.Context, string) bool
		want   string
	}{
		{"subtotal", stepTwo.VerifySubtotal, o.Subtotal},
		{"tax", stepTwo.VerifyTax, o.Tax},
		{"total", stepTwo.VerifyTotal, o.Total},
	}
	for _, c := range checks {
		if c.want != "" && !c.verify(ctx, c.want) {
			return fmt.Errorf("%s не равен %s", c.name, c.want)
		}
	}

	complete, err := stepTwo.Finish(ctx)
	if err != nil {
		return err
	}
	if !complete.IsCompletionMessageCorrect(ctx) {
		return errors.New("нет сообщения о завершении заказа")
	}
	return nil
}

// CheckPostalCodeRequired отправляет форму без индекса и ждёт ошибку валидации.
func CheckPostalCodeRequired(ctx context.Context, d Deps, baseURL string, o Order) error {
	inventory, err := signIn(ctx, d, baseURL, o)
	if err != nil {
		return err
	}
	if err := inventory.AddBackpack(ctx); err != nil {
		return err
	}
	cart, err := inventory.OpenCart(ctx)
	if err != nil {
		return err
	}
	stepOne, err := cart.Checkout(ctx)
	if err != nil {
		return err
	}

	customer := o.Customer
	customer.PostalCode = ""
	if err := stepOne.Fill(ctx, customer); err != nil {
		return err
	}
	if _, err := stepOne.Continue(ctx); err != nil {
		return err
	}

	if !stepOne.ErrorContains(ctx, "Postal Code is required") {
		return fmt.Errorf("ожидалась ошибка про индекс, получено %q", stepOne.ErrorText(ctx))
	}
	return nil
}
