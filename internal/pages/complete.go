package pages

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sauceDemo/internal/browser"
)

var (
	completeHeader = browser.TestID("complete-header")
	completeText   = browser.TestID("complete-text")
	backToProducts = browser.TestID("back-to-products")
	ponyExpress    = browser.TestID("pony-express")
)

const completeHeaderText = "Thank you for your order!"

type CheckoutCompletePage struct {
	base
}

func newCheckoutCompletePage(d Deps) *CheckoutCompletePage {
	return &CheckoutCompletePage{base: newBase(d, "checkout-complete")}
}

func (p *CheckoutCompletePage) IsLoaded(ctx context.Context) bool {
	return p.loaded(ctx, "checkout-complete.html", "Checkout: Complete!")
}

func (p *CheckoutCompletePage) AreCompletionElementsDisplayed(ctx context.Context) bool {
	return p.allDisplayed(ctx, completeHeader, completeText, ponyExpress, backToProducts)
}

func (p *CheckoutCompletePage) HeaderText(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, completeHeader)
}

func (p *CheckoutCompletePage) MessageText(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, completeText)
}

func (p *CheckoutCompletePage) IsCompletionMessageCorrect(ctx context.Context) bool {
	header := p.text(ctx, completeHeader)
	message := p.text(ctx, completeText)

	headerOK := header == completeHeaderText
	messageOK := strings.Contains(message, "Your order has been dispatched") &&
		strings.Contains(message, "pony can get there")

	p.log.Info("Сообщение о заказе", zap.Bool("header", headerOK), zap.Bool("message", messageOK))
	return headerOK && messageOK
}

func (p *CheckoutCompletePage) BackHome(ctx context.Context) (*InventoryPage, error) {
	p.log.Info("Возврат на витрину")
	if err := p.act.ClickSafely(ctx, backToProducts); err != nil {
		return nil, err
	}
	return newInventoryPage(p.deps), nil
}

func (p *CheckoutCompletePage) IsBackHomeDisplayed(ctx context.Context) bool {
	return p.displayed(ctx, backToProducts)
}

func (p *CheckoutCompletePage) IsPonyExpressDisplayed(ctx context.Context) bool {
	return p.displayed(ctx, ponyExpress)
}
