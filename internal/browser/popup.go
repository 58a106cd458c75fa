package browser

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DismissCandidates: кнопки менеджера паролей и общие OK/закрыть, от самых
// конкретных к самым общим.
var DismissCandidates = []Locator{
	CSS("button[jsname='V67aGc']"),
	CSS("button[data-mdc-dialog-action='ok']"),
	CSS("[data-test='OK']"),
	CSS("button[aria-label='OK']"),
	CSS("[data-testid='password-manager-ok']"),
	CSS("button[class*='password'][class*='ok']"),
	CSS("input[type='button'][value='OK']"),
	CSS(".password-popup button"),
	CSS("[role='button'][aria-label*='OK']"),
	CSS("button[jsaction*='dismiss']"),
	XPath("//button[text()='OK']"),
	XPath("//button[contains(text(), 'OK')]"),
	XPath("//input[@type='button' and @value='OK']"),
	XPath("//*[@role='dialog']//button[contains(text(), 'OK')]"),
	XPath("//*[contains(@class, 'password-manager')]//button"),
	XPath("//button[contains(@class, 'ok') or contains(@class, 'confirm')]"),
}

// PopupContainers: контейнеры, видимость которых означает открытый попап.
var PopupContainers = []Locator{
	CSS(".modal"),
	CSS(".popup"),
	CSS(".dialog"),
	CSS("[role='dialog']"),
	CSS(".notification"),
	CSS(".alert"),
}

// passwordModalContainers: контейнеры, где менеджеры паролей рисуют
// предупреждение о смене пароля.
var passwordModalContainers = []Locator{
	CSS("[role='dialog']"),
	CSS(".modal"),
	CSS("[class*='password-manager']"),
	CSS("[class*='password'][class*='modal']"),
	CSS("div[jscontroller]"),
	CSS("[data-mdc-dialog-container]"),
}

var passwordModalWords = []string{"password", "change", "breach"}

const (
	DefaultSettleTime = 500 * time.Millisecond
	DefaultDialogWait = 300 * time.Millisecond
	disappearTimeout  = 3 * time.Second
)

type DispatcherOptions struct {
	// Candidates заменяет DismissCandidates.
	Candidates   []Locator
	ProbeTimeout time.Duration
	SettleTime   time.Duration
	// DialogWait: сколько ждать появления нативного диалога.
	DialogWait time.Duration
}

// Dispatcher закрывает временные диалоги после навигации или отправки формы.
// Вызовы независимы: состояния между ними нет.
type Dispatcher struct {
	drv        Driver
	log        *zap.Logger
	prober     *Prober
	candidates []Locator
	settle     time.Duration
	dialogWait time.Duration
}

func NewDispatcher(drv Driver, log *zap.Logger, opts DispatcherOptions) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Candidates == nil {
		opts.Candidates = DismissCandidates
	}
	if opts.SettleTime < 0 {
		opts.SettleTime = 0
	} else if opts.SettleTime == 0 {
		opts.SettleTime = DefaultSettleTime
	}
	if opts.DialogWait <= 0 {
		opts.DialogWait = DefaultDialogWait
	}

	return &Dispatcher{
		drv:        drv,
		log:        log.Named("popup"),
		prober:     NewProber(drv, log, opts.ProbeTimeout),
		candidates: opts.Candidates,
		settle:     opts.SettleTime,
		dialogWait: opts.DialogWait,
	}
}

// Dismiss сначала принимает нативный диалог, затем пробует DOM-попапы.
// Отсутствие попапа: нормальный исход, ошибкой не считается.
func (d *Dispatcher) Dismiss(ctx context.Context) bool {
	dismissed := d.acceptNative(ctx)

	if !dismissed {
		res := d.prober.Probe(ctx, d.candidates)
		if res.Found() {
			d.log.Info("Попап закрыт",
				zap.Stringer("locator", res.Locator),
				zap.String("text", res.Text),
				zap.Bool("heuristic", res.Heuristic))
			dismissed = true
		}
	}

	if !dismissed {
		d.log.Debug("Попапов нет")
		return false
	}

	d.pause(ctx)
	return true
}

func (d *Dispatcher) acceptNative(ctx context.Context) bool {
	dialog, ok, err := d.drv.AcceptDialog(ctx, d.dialogWait)
	if err != nil {
		d.log.Debug("Не удалось обработать нативный диалог", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	d.log.Info("Нативный диалог принят", zap.String("type", dialog.Type), zap.String("message", dialog.Message))
	return true
}

// IsPopupVisible только смотрит на страницу и ничего не нажимает.
func (d *Dispatcher) IsPopupVisible(ctx context.Context) bool {
	for _, loc := range PopupContainers {
		if d.anyVisible(ctx, loc, nil) {
			d.log.Info("Обнаружен попап", zap.Stringer("locator", loc))
			return true
		}
	}

	if _, text, ok := findKeywordButton(ctx, d.drv, false); ok {
		d.log.Info("Обнаружена кнопка попапа", zap.String("text", text))
		return true
	}

	return false
}

// PasswordModalPresent ищет видимое предупреждение менеджера паролей.
func (d *Dispatcher) PasswordModalPresent(ctx context.Context) bool {
	mentionsPassword := func(text string) bool {
		lower := strings.ToLower(text)
		for _, w := range passwordModalWords {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	for _, loc := range passwordModalContainers {
		if d.anyVisible(ctx, loc, mentionsPassword) {
			d.log.Info("Обнаружено окно смены пароля", zap.Stringer("locator", loc))
			return true
		}
	}
	return false
}

// WaitForPopupsToDisappear ждёт скрытия .modal. Таймаут ожидаем, если модалки не было.
func (d *Dispatcher) WaitForPopupsToDisappear(ctx context.Context) {
	if err := d.drv.Element(CSS(".modal")).WaitFor(ctx, StateHidden, disappearTimeout); err != nil {
		d.log.Debug("Модальное окно не скрылось", zap.Error(err))
	}
}

func (d *Dispatcher) anyVisible(ctx context.Context, loc Locator, textMatch func(string) bool) bool {
	elements, err := d.drv.Elements(ctx, loc)
	if err != nil {
		return false
	}
	for _, el := range elements {
		visible, err := el.IsVisible(ctx)
		if err != nil || !visible {
			continue
		}
		if textMatch == nil {
			return true
		}
		if text, err := el.Text(ctx); err == nil && textMatch(text) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) pause(ctx context.Context) {
	if d.settle <= 0 {
		return
	}
	select {
	case <-time.After(d.settle):
	case <-ctx.Done():
	}
}
