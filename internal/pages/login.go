package pages

import (
	"context"

	"go.uber.org/zap"

	"sauceDemo/internal/browser"
)

var (
	usernameField = browser.TestID("username")
	passwordField = browser.TestID("password")
	loginButton   = browser.TestID("login-button")
	loginLogo     = browser.CSS(".login_logo")
	loginError    = browser.TestID("error")
)

type LoginPage struct {
	base
}

func newLoginPage(d Deps) *LoginPage {
	return &LoginPage{base: newBase(d, "login")}
}

func (p *LoginPage) IsDisplayed(ctx context.Context) bool {
	ok := p.allDisplayed(ctx, loginLogo, usernameField, passwordField, loginButton)
	p.log.Info("Страница входа отображается", zap.Bool("displayed", ok))
	return ok
}

func (p *LoginPage) EnterUsername(ctx context.Context, username string) error {
	p.log.Info("Ввод имени пользователя", zap.String("username", username))
	return p.act.TypeSafely(ctx, usernameField, username)
}

func (p *LoginPage) EnterPassword(ctx context.Context, password string) error {
	p.log.Info("Ввод пароля")
	return p.act.TypeSafely(ctx, passwordField, password)
}

func (p *LoginPage) ClickLogin(ctx context.Context) (*InventoryPage, error) {
	p.log.Info("Нажатие кнопки входа")
	if err := p.act.ClickSafely(ctx, loginButton); err != nil {
		return nil, err
	}
	return newInventoryPage(p.deps), nil
}

func (p *LoginPage) Login(ctx context.Context, username, password string) (*InventoryPage, error) {
	p.log.Info("Вход в магазин", zap.String("username", username))
	if err := p.act.FillForm(ctx,
		browser.Field{Locator: usernameField, Value: username},
		browser.Field{Locator: passwordField, Value: password},
	); err != nil {
		return nil, err
	}
	return p.ClickLogin(ctx)
}

// IsErrorDisplayed проверяет сразу: ошибка появляется синхронно с кликом.
func (p *LoginPage) IsErrorDisplayed(ctx context.Context) bool {
	return p.act.IsVisible(ctx, loginError)
}

func (p *LoginPage) ErrorText(ctx context.Context) (string, error) {
	return p.act.ReadText(ctx, loginError)
}
