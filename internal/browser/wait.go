package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const enabledPollInterval = 50 * time.Millisecond

// pwElement оборачивает playwright.Locator. Поиск ленивый: каждый вызов
// заново находит элемент в текущем DOM.
type pwElement struct {
	loc     Locator
	locator playwright.Locator
	index   int
}

func (e *pwElement) String() string {
	if e.index > 0 {
		return fmt.Sprintf("%s[%d]", e.loc, e.index)
	}
	return e.loc.String()
}

func (e *pwElement) WaitFor(ctx context.Context, state State, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var pwState *playwright.WaitForSelectorState
	switch state {
	case StateAttached:
		pwState = playwright.WaitForSelectorStateAttached
	case StateHidden:
		pwState = playwright.WaitForSelectorStateHidden
	default:
		pwState = playwright.WaitForSelectorStateVisible
	}

	if err := e.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   pwState,
		Timeout: playwright.Float(remainingMs(deadline)),
	}); err != nil {
		return err
	}

	if state != StateClickable {
		return nil
	}

	// Видимость есть, дожидаемся включения
	for {
		enabled, err := e.locator.IsEnabled()
		if err == nil && enabled {
			return nil
		}
		if time.Now().Add(enabledPollInterval).After(deadline) {
			return ErrWaitTimeout("%s не стал доступен за %v", e.loc, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(enabledPollInterval):
		}
	}
}

func remainingMs(deadline time.Time) float64 {
	ms := float64(time.Until(deadline).Milliseconds())
	if ms < 1 {
		// 0 в playwright означает «без таймаута»
		return 1
	}
	return ms
}

func (e *pwElement) Click(ctx context.Context) error {
	return e.locator.Click()
}

func (e *pwElement) Clear(ctx context.Context) error {
	return e.locator.Clear()
}

func (e *pwElement) Fill(ctx context.Context, text string) error {
	return e.locator.Fill(text)
}

func (e *pwElement) Text(ctx context.Context) (string, error) {
	return e.locator.InnerText()
}

func (e *pwElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.locator.GetAttribute(name)
}

func (e *pwElement) Value(ctx context.Context) (string, error) {
	return e.locator.InputValue()
}

func (e *pwElement) IsVisible(ctx context.Context) (bool, error) {
	return e.locator.IsVisible()
}

func (e *pwElement) IsEnabled(ctx context.Context) (bool, error) {
	return e.locator.IsEnabled()
}
