package pages

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"sauceDemo/internal/browser"
	"sauceDemo/internal/browser/browsertest"
)

const shopURL = "https://www.saucedemo.com/"

var prices = map[string]float64{
	Backpack:  29.99,
	BikeLight: 9.99,
}

// shop: упрощённая копия Swag Labs поверх browsertest.Page.
type shop struct {
	page *browsertest.Page
	cart []string
}

func newShop(t *testing.T) (*shop, Deps) {
	t.Helper()

	s := &shop{page: browsertest.New()}
	s.page.SetTitle("Swag Labs")
	s.page.Route(shopURL, s.login)

	log := zaptest.NewLogger(t)
	deps := Deps{
		Actions: browser.NewActions(s.page, log, 100*time.Millisecond),
		Popups: browser.NewDispatcher(s.page, log, browser.DispatcherOptions{
			ProbeTimeout: 5 * time.Millisecond,
			SettleTime:   -1,
			DialogWait:   time.Millisecond,
		}),
		Log:           log,
		ContinueDelay: -1,
	}
	return s, deps
}

func (s *shop) goTo(p *browsertest.Page, path string, build func(p *browsertest.Page)) {
	p.ResetLocked(shopURL+path, "Swag Labs")
	build(p)
}

func (s *shop) inCart(item string) bool {
	for _, i := range s.cart {
		if i == item {
			return true
		}
	}
	return false
}

func (s *shop) login(p *browsertest.Page) {
	p.AddLocked(&browsertest.Node{Text: "Swag Labs"}, loginLogo)
	user := p.AddLocked(&browsertest.Node{Tag: "input"}, usernameField)
	pass := p.AddLocked(&browsertest.Node{Tag: "input"}, passwordField)
	p.AddLocked(&browsertest.Node{Tag: "input", OnClick: func(p *browsertest.Page) {
		if user.Value == "standard_user" && pass.Value == "secret_sauce" {
			s.goTo(p, "inventory.html", s.inventory)
			return
		}
		p.AddLocked(&browsertest.Node{
			Tag:  "h3",
			Text: "Epic sadface: Username and password do not match any user in this service",
		}, loginError)
	}}, loginButton)
}

func (s *shop) badge(p *browsertest.Page) {
	if len(s.cart) > 0 {
		p.AddLocked(&browsertest.Node{Text: fmt.Sprint(len(s.cart))}, cartBadge)
	}
}

func (s *shop) inventory(p *browsertest.Page) {
	p.AddLocked(&browsertest.Node{Text: "Products"}, title)
	p.AddLocked(&browsertest.Node{Tag: "a", OnClick: func(p *browsertest.Page) {
		s.goTo(p, "cart.html", s.cartPage)
	}}, cartLink)
	p.AddLocked(&browsertest.Node{Text: Backpack}, backpackTitle)
	p.AddLocked(&browsertest.Node{Text: BikeLight}, bikeLightTitle)
	p.AddLocked(&browsertest.Node{Text: "$29.99"}, inventoryPrices)
	p.AddLocked(&browsertest.Node{Text: "$9.99"}, inventoryPrices)
	s.badge(p)

	add := func(item string, addLoc, removeLoc browser.Locator) {
		if s.inCart(item) {
			p.AddLocked(&browsertest.Node{Tag: "button", Text: "Remove"}, removeLoc)
			return
		}
		p.AddLocked(&browsertest.Node{Tag: "button", Text: "Add to cart", OnClick: func(p *browsertest.Page) {
			s.cart = append(s.cart, item)
			s.goTo(p, "inventory.html", s.inventory)
		}}, addLoc)
	}
	add(Backpack, addBackpack, removeBackpack)
	add(BikeLight, addBikeLight, removeBikeLight)
}

func (s *shop) cartPage(p *browsertest.Page) {
	p.AddLocked(&browsertest.Node{Text: "Your Cart"}, title)
	p.AddLocked(&browsertest.Node{Text: "QTY"}, quantityLabel)
	p.AddLocked(&browsertest.Node{Text: "Description"}, descriptionLabel)
	s.badge(p)

	for _, item := range s.cart {
		p.AddLocked(&browsertest.Node{}, cartItems)
		p.AddLocked(&browsertest.Node{Text: "1"}, cartQuantities)
		p.AddLocked(&browsertest.Node{Text: item}, cartItemNames)
		p.AddLocked(&browsertest.Node{Text: fmt.Sprintf("$%.2f", prices[item])}, cartItemPrices)
	}

	p.AddLocked(&browsertest.Node{Tag: "button", Text: "Checkout", OnClick: func(p *browsertest.Page) {
		s.goTo(p, "checkout-step-one.html", s.stepOne)
	}}, checkoutButton)
	p.AddLocked(&browsertest.Node{Tag: "button", Text: "Continue Shopping", OnClick: func(p *browsertest.Page) {
		s.goTo(p, "inventory.html", s.inventory)
	}}, continueShopping)
}

func (s *shop) stepOne(p *browsertest.Page) {
	p.AddLocked(&browsertest.Node{Text: "Checkout: Your Information"}, title)
	first := p.AddLocked(&browsertest.Node{Tag: "input"}, firstNameField)
	last := p.AddLocked(&browsertest.Node{Tag: "input"}, lastNameField)
	postal := p.AddLocked(&browsertest.Node{Tag: "input"}, postalCodeField)

	p.AddLocked(&browsertest.Node{Tag: "input", OnClick: func(p *browsertest.Page) {
		var msg string
		switch {
		case first.Value == "":
			msg = "Error: First Name is required"
		case last.Value == "":
			msg = "Error: Last Name is required"
		case postal.Value == "":
			msg = "Error: Postal Code is required"
		default:
			s.goTo(p, "checkout-step-two.html", s.stepTwo)
			return
		}
		p.AddLocked(&browsertest.Node{Tag: "h3", Text: msg}, checkoutError)
		p.AddLocked(&browsertest.Node{Text: msg}, errorContainer)
		p.AddLocked(&browsertest.Node{Tag: "input"}, firstNameInvalid)
	}}, continueButton)
	p.AddLocked(&browsertest.Node{Tag: "button", Text: "Cancel", OnClick: func(p *browsertest.Page) {
		s.goTo(p, "cart.html", s.cartPage)
	}}, cancelButton)
}

func (s *shop) stepTwo(p *browsertest.Page) {
	var subtotal float64
	for _, item := range s.cart {
		subtotal += prices[item]
	}
	tax := subtotal * 0.08

	p.AddLocked(&browsertest.Node{Text: "Checkout: Overview"}, title)
	p.AddLocked(&browsertest.Node{Text: "Payment Information:"}, paymentInfoLabel)
	p.AddLocked(&browsertest.Node{Text: "SauceCard #31337"}, paymentInfoValue)
	p.AddLocked(&browsertest.Node{Text: "Shipping Information:"}, shippingInfoLabel)
	p.AddLocked(&browsertest.Node{Text: "Free Pony Express Delivery!"}, shippingInfoValue)
	p.AddLocked(&browsertest.Node{Text: "Price Total"}, totalInfoLabel)
	p.AddLocked(&browsertest.Node{Text: fmt.Sprintf("Item total: $%.2f", subtotal)}, subtotalLabel)
	p.AddLocked(&browsertest.Node{Text: fmt.Sprintf("Tax: $%.2f", tax)}, taxLabel)
	p.AddLocked(&browsertest.Node{Text: fmt.Sprintf("Total: $%.2f", subtotal+tax)}, totalLabel)

	p.AddLocked(&browsertest.Node{Tag: "button", Text: "Finish", OnClick: func(p *browsertest.Page) {
		s.cart = nil
		s.goTo(p, "checkout-complete.html", s.complete)
	}}, finishButton)
	p.AddLocked(&browsertest.Node{Tag: "button", Text: "Cancel", OnClick: func(p *browsertest.Page) {
		s.goTo(p, "inventory.html", s.inventory)
	}}, cancelButton)
}

func (s *shop) complete(p *browsertest.Page) {
	p.AddLocked(&browsertest.Node{Text: "Checkout: Complete!"}, title)
	p.AddLocked(&browsertest.Node{Tag: "h2", Text: "Thank you for your order!"}, completeHeader)
	p.AddLocked(&browsertest.Node{
		Text: "Your order has been dispatched, and will arrive just as fast as the pony can get there!",
	}, completeText)
	p.AddLocked(&browsertest.Node{Tag: "img"}, ponyExpress)
	p.AddLocked(&browsertest.Node{Tag: "button", Text: "Back Home", OnClick: func(p *browsertest.Page) {
		s.goTo(p, "inventory.html", s.inventory)
	}}, backToProducts)
}
