// Package pages описывает страницы Swag Labs. Каждый глагол навигации
// возвращает объект следующей страницы; старый объект после этого не
// используется.
package pages

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"sauceDemo/internal/browser"
)

// Заголовок [data-test='title'] есть на всех страницах после входа.
var title = browser.TestID("title")

// DefaultContinueDelay: пауза после Continue на первом шаге оформления,
// за неё появляется ошибка валидации или происходит переход.
const DefaultContinueDelay = time.Second

// Deps передаются от страницы к странице при каждом переходе.
type Deps struct {
	Actions *browser.Actions
	Popups  *browser.Dispatcher
	Log     *zap.Logger
	// ContinueDelay: 0 означает значение по умолчанию, отрицательное отключает паузу.
	ContinueDelay time.Duration
}

type base struct {
	deps Deps
	act  *browser.Actions
	log  *zap.Logger
}

func newBase(d Deps, name string) base {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return base{
		deps: d,
		act:  d.Actions,
		log:  log.Named(name),
	}
}

// Open открывает стартовую страницу магазина и закрывает попапы.
func Open(ctx context.Context, d Deps, baseURL string) (*LoginPage, error) {
	p := newLoginPage(d)
	if err := p.act.Navigate(ctx, baseURL); err != nil {
		return nil, err
	}
	p.DismissPopups(ctx)
	return p, nil
}

// DismissPopups закрывает нативный диалог или DOM-попап, если он есть.
func (b base) DismissPopups(ctx context.Context) bool {
	if b.deps.Popups == nil {
		return false
	}
	return b.deps.Popups.Dismiss(ctx)
}

func (b base) Title(ctx context.Context) (string, error) {
	return b.act.Title(ctx)
}

func (b base) CurrentURL() string {
	return b.act.CurrentURL()
}

// displayed ждёт видимости в пределах таймаута действия.
func (b base) displayed(ctx context.Context, loc browser.Locator) bool {
	return b.act.AwaitVisible(ctx, loc)
}

func (b base) allDisplayed(ctx context.Context, locs ...browser.Locator) bool {
	for _, loc := range locs {
		if !b.displayed(ctx, loc) {
			return false
		}
	}
	return true
}

// text читает текст для проверок; ошибку уже залогировал Actions.
func (b base) text(ctx context.Context, loc browser.Locator) string {
	text, err := b.act.ReadText(ctx, loc)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func (b base) textIs(ctx context.Context, loc browser.Locator, want string) bool {
	return b.displayed(ctx, loc) && b.text(ctx, loc) == want
}

// loaded: общая проверка страницы: заголовок, адрес и текст заголовка.
func (b base) loaded(ctx context.Context, fragment, heading string) bool {
	ok := b.displayed(ctx, title) &&
		b.act.WaitForURL(ctx, fragment) == nil &&
		b.text(ctx, title) == heading
	b.log.Info("Проверка загрузки страницы", zap.String("url", fragment), zap.Bool("loaded", ok))
	return ok
}
