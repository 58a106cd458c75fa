package pages

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"sauceDemo/internal/browser"
)

var (
	firstNameField   = browser.TestID("firstName")
	lastNameField    = browser.TestID("lastName")
	postalCodeField  = browser.TestID("postalCode")
	continueButton   = browser.TestID("continue")
	cancelButton     = browser.TestID("cancel")
	checkoutError    = browser.TestID("error")
	errorContainer   = browser.CSS(".error-message-container")
	errorBanner      = browser.CSS(".error-message-container .error")
	anyCheckoutError = browser.CSS(".error-message-container, [data-test='error'], .error, .error-banner, .field-error")

	firstNameInvalid = browser.CSS("[data-test='firstName'].error, [data-test='firstName']:invalid, [data-test='firstName'][aria-invalid='true']")
	lastNameInvalid  = browser.CSS("[data-test='lastName'].error, [data-test='lastName']:invalid, [data-test='lastName'][aria-invalid='true']")
)

// errorLocators: места, где магазин показывает ошибку формы, по порядку.
var errorLocators = []browser.Locator{checkoutError, errorContainer, errorBanner, anyCheckoutError}

var (
	paymentInfoLabel  = browser.TestID("payment-info-label")
	paymentInfoValue  = browser.TestID("payment-info-value")
	shippingInfoLabel = browser.TestID("shipping-info-label")
	shippingInfoValue = browser.TestID("shipping-info-value")
	totalInfoLabel    = browser.TestID("total-info-label")
	subtotalLabel     = browser.TestID("subtotal-label")
	taxLabel          = browser.TestID("tax-label")
	totalLabel        = browser.TestID("total-label")
	finishButton      = browser.TestID("finish")
)

var (
	subtotalPattern  = regexp.MustCompile(`Item total: \$(\d+\.\d{2})`)
	taxPattern       = regexp.MustCompile(`Tax: \$(\d+\.\d{2})`)
	totalPattern     = regexp.MustCompile(`Total: \$(\d+\.\d{2})`)
	sauceCardPattern = regexp.MustCompile(`SauceCard #(\d+)`)
)

// CheckoutInfo: данные покупателя с первого шага оформления.
type CheckoutInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

type CheckoutStepOnePage struct {
	base
}

func newCheckoutStepOnePage(d Deps) *CheckoutStepOnePage {
	return &CheckoutStepOnePage{base: newBase(d, "checkout-step-one")}
}

func (p *CheckoutStepOnePage) IsLoaded(ctx context.Context) bool {
	return p.loaded(ctx, "checkout-step-one.html", "Checkout: Your Information")
}

func (p *CheckoutStepOnePage) EnterFirstName(ctx context.Context, name string) error {
	p.log.Info("Ввод имени", zap.String("firstName", name))
	return p.act.TypeSafely(ctx, firstNameField, name)
}

func (p *CheckoutStepOnePage) EnterLastName(ctx context.Context, name string) error {
	p.log.Info("Ввод фамилии", zap.String("lastName", name))
	return p.act.TypeSafely(ctx, lastNameField, name)
}

func (p *CheckoutStepOnePage) EnterPostalCode(ctx context.Context, code string) error {
	p.log.Info("Ввод индекса", zap.String("postalCode", code))
	return p.act.TypeSafely(ctx, postalCodeField, code)
}

func (p *CheckoutStepOnePage) Fill(ctx context.Context, info CheckoutInfo) error {
	p.log.Info("Заполнение данных покупателя",
		zap.String("firstName", info.FirstName),
		zap.String("lastName", info.LastName),
		zap.String("postalCode", info.PostalCode))
	return p.act.FillForm(ctx,
		browser.Field{Locator: firstNameField, Value: info.FirstName},
		browser.Field{Locator: lastNameField, Value: info.LastName},
		browser.Field{Locator: postalCodeField, Value: info.PostalCode},
	)
}

// Values читает то, что сейчас введено в поля формы.
func (p *CheckoutStepOnePage) Values(ctx context.Context) CheckoutInfo {
	v := p.act.ReadForm(ctx, firstNameField, lastNameField, postalCodeField)
	return CheckoutInfo{
		FirstName:  v[firstNameField],
		LastName:   v[lastNameField],
		PostalCode: v[postalCodeField],
	}
}

// Continue отправляет форму и выдерживает паузу. При ошибке валидации
// переход не происходит, и проверять ошибку нужно на этой же странице.
func (p *CheckoutStepOnePage) Continue(ctx context.Context) (*CheckoutStepTwoPage, error) {
	p.log.Info("Нажатие Continue")
	if err := p.act.ClickSafely(ctx, continueButton); err != nil {
		return nil, err
	}
	p.pause(ctx)
	return newCheckoutStepTwoPage(p.deps), nil
}

func (p *CheckoutStepOnePage) pause(ctx context.Context) {
	delay := p.deps.ContinueDelay
	if delay == 0 {
		delay = DefaultContinueDelay
	}
	if delay < 0 {
		return
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

func (p *CheckoutStepOnePage) Cancel(ctx context.Context) (*CartPage, error) {
	p.log.Info("Отмена оформления")
	if err := p.act.ClickSafely(ctx, cancelButton); err != nil {
		return nil, err
	}
	return newCartPage(p.deps), nil
}

func (p *CheckoutStepOnePage) AreFieldsDisplayed(ctx context.Context) bool {
	return p.allDisplayed(ctx, firstNameField, lastNameField, postalCodeField)
}

func (p *CheckoutStepOnePage) IsErrorDisplayed(ctx context.Context) bool {
	for _, loc := range errorLocators {
		if p.act.IsVisible(ctx, loc) {
			p.log.Info("Показана ошибка формы", zap.Stringer("locator", loc))
			return true
		}
	}
	return false
}

// ErrorText берёт текст из первого видимого места ошибки. Пустая строка,
// если ошибки нет.
func (p *CheckoutStepOnePage) ErrorText(ctx context.Context) string {
	for _, loc := range errorLocators {
		if !p.act.IsVisible(ctx, loc) {
			continue
		}
		if text := p.text(ctx, loc); text != "" {
			p.log.Info("Текст ошибки", zap.Stringer("locator", loc), zap.String("text", text))
			return text
		}
	}
	p.log.Warn("Текст ошибки не найден")
	return ""
}

// ErrorContains сравнивает без учёта регистра.
func (p *CheckoutStepOnePage) ErrorContains(ctx context.Context, want string) bool {
	text := p.ErrorText(ctx)
	return strings.Contains(strings.ToLower(text), strings.ToLower(want))
}

func (p *CheckoutStepOnePage) AreFieldErrorsDisplayed(ctx context.Context) bool {
	return p.act.IsVisible(ctx, firstNameInvalid) || p.act.IsVisible(ctx, lastNameInvalid)
}

type CheckoutStepTwoPage struct {
	base
}

func newCheckoutStepTwoPage(d Deps) *CheckoutStepTwoPage {
	return &CheckoutStepTwoPage{base: newBase(d, "checkout-step-two")}
}

func (p *CheckoutStepTwoPage) IsLoaded(ctx context.Context) bool {
	return p.loaded(ctx, "checkout-step-two.html", "Checkout: Overview")
}

func (p *CheckoutStepTwoPage) IsPaymentInfoDisplayed(ctx context.Context) bool {
	return p.allDisplayed(ctx, paymentInfoLabel, paymentInfoValue)
}

func (p *CheckoutStepTwoPage) IsShippingInfoDisplayed(ctx context.Context) bool {
	return p.allDisplayed(ctx, shippingInfoLabel, shippingInfoValue)
}

func (p *CheckoutStepTwoPage) IsPriceTotalDisplayed(ctx context.Context) bool {
	return p.allDisplayed(ctx, totalInfoLabel, subtotalLabel, taxLabel, totalLabel)
}

func (p *CheckoutStepTwoPage) PaymentInfo(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, paymentInfoValue)
}

func (p *CheckoutStepTwoPage) IsSauceCard(ctx context.Context) bool {
	info, err := p.PaymentInfo(ctx)
	if err != nil {
		return false
	}
	card, ok := match(sauceCardPattern, info)
	if !ok {
		p.log.Warn("Оплата не картой SauceCard", zap.String("payment", info))
		return false
	}
	p.log.Info("Оплата картой SauceCard", zap.String("card", card))
	return true
}

func (p *CheckoutStepTwoPage) ShippingInfo(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, shippingInfoValue)
}

func (p *CheckoutStepTwoPage) Subtotal(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, subtotalLabel)
}

func (p *CheckoutStepTwoPage) Tax(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, taxLabel)
}

func (p *CheckoutStepTwoPage) Total(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, totalLabel)
}

func (p *CheckoutStepTwoPage) VerifySubtotal(ctx context.Context, expected string) bool {
	return p.verifyAmount(ctx, "subtotal", subtotalLabel, subtotalPattern, expected)
}

func (p *CheckoutStepTwoPage) VerifyTax(ctx context.Context, expected string) bool {
	return p.verifyAmount(ctx, "tax", taxLabel, taxPattern, expected)
}

func (p *CheckoutStepTwoPage) VerifyTotal(ctx context.Context, expected string) bool {
	return p.verifyAmount(ctx, "total", totalLabel, totalPattern, expected)
}

func (p *CheckoutStepTwoPage) verifyAmount(ctx context.Context, name string, loc browser.Locator, re *regexp.Regexp, expected string) bool {
	text, err := p.act.ReadText(ctx, loc)
	if err != nil {
		return false
	}
	actual, ok := match(re, text)
	if !ok {
		p.log.Warn("Сумма не распознана", zap.String("amount", name), zap.String("text", text))
		return false
	}
	p.log.Info("Проверка суммы",
		zap.String("amount", name),
		zap.String("expected", expected),
		zap.String("actual", actual),
		zap.Bool("matches", actual == expected))
	return actual == expected
}

func (p *CheckoutStepTwoPage) Finish(ctx context.Context) (*CheckoutCompletePage, error) {
	p.log.Info("Завершение заказа")
	if err := p.act.ClickSafely(ctx, finishButton); err != nil {
		return nil, err
	}
	return newCheckoutCompletePage(p.deps), nil
}

// Cancel со второго шага ведёт на витрину, а не в корзину.
func (p *CheckoutStepTwoPage) Cancel(ctx context.Context) (*InventoryPage, error) {
	p.log.Info("Отмена заказа")
	if err := p.act.ClickSafely(ctx, cancelButton); err != nil {
		return nil, err
	}
	return newInventoryPage(p.deps), nil
}

// match возвращает первую группу регулярного выражения.
func match(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
