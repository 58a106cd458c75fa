package browser

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sauceDemo/internal/sanitizer"
)

const DefaultTimeout = 10 * time.Second

// Actions оборачивает действия над элементами ожиданием готовности:
// клик ждёт кликабельности, ввод и чтение ждут видимости.
type Actions struct {
	drv     Driver
	log     *zap.Logger
	timeout time.Duration
}

func NewActions(drv Driver, log *zap.Logger, timeout time.Duration) *Actions {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Actions{
		drv:     drv,
		log:     log.Named("actions"),
		timeout: timeout,
	}
}

func (a *Actions) Driver() Driver {
	return a.drv
}

func (a *Actions) Timeout() time.Duration {
	return a.timeout
}

func (a *Actions) Logger() *zap.Logger {
	return a.log
}

func (a *Actions) ClickSafely(ctx context.Context, loc Locator) error {
	el := a.drv.Element(loc)
	if err := el.WaitFor(ctx, StateClickable, a.timeout); err != nil {
		return a.fail(OpClick, loc, err)
	}
	if err := el.Click(ctx); err != nil {
		return a.fail(OpClick, loc, err)
	}
	a.log.Debug("Клик выполнен", zap.Stringer("locator", loc))
	return nil
}

// TypeSafely очищает поле и вводит текст заново, дописывания не бывает.
func (a *Actions) TypeSafely(ctx context.Context, loc Locator, text string) error {
	el := a.drv.Element(loc)
	if err := el.WaitFor(ctx, StateVisible, a.timeout); err != nil {
		return a.fail(OpType, loc, err)
	}
	if err := el.Clear(ctx); err != nil {
		return a.fail(OpType, loc, err)
	}
	if err := el.Fill(ctx, text); err != nil {
		return a.fail(OpType, loc, err)
	}
	a.log.Debug("Текст введён", zap.Stringer("locator", loc), zap.String("text", sanitizer.Default.Field(loc.Selector, text)))
	return nil
}

func (a *Actions) ReadText(ctx context.Context, loc Locator) (string, error) {
	el := a.drv.Element(loc)
	if err := el.WaitFor(ctx, StateVisible, a.timeout); err != nil {
		return "", a.fail(OpRead, loc, err)
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", a.fail(OpRead, loc, err)
	}
	a.log.Debug("Текст прочитан", zap.Stringer("locator", loc), zap.String("text", text))
	return text, nil
}

// IsVisible проверяет видимость сразу, без ожидания. Любая ошибка: false.
func (a *Actions) IsVisible(ctx context.Context, loc Locator) bool {
	visible, err := a.drv.Element(loc).IsVisible(ctx)
	if err != nil {
		a.log.Debug("Элемент не найден", zap.Stringer("locator", loc), zap.Error(err))
		return false
	}
	a.log.Debug("Проверка видимости", zap.Stringer("locator", loc), zap.Bool("visible", visible))
	return visible
}

// AwaitVisible ждёт видимости в пределах таймаута действия и превращает
// таймаут в false. Используется для проверок загрузки страницы.
func (a *Actions) AwaitVisible(ctx context.Context, loc Locator) bool {
	if err := a.WaitVisible(ctx, loc); err != nil {
		return false
	}
	return true
}

func (a *Actions) WaitVisible(ctx context.Context, loc Locator) error {
	return a.wait(ctx, loc, StateVisible, a.timeout)
}

func (a *Actions) WaitClickable(ctx context.Context, loc Locator) error {
	return a.wait(ctx, loc, StateClickable, a.timeout)
}

func (a *Actions) WaitHidden(ctx context.Context, loc Locator, timeout time.Duration) error {
	return a.wait(ctx, loc, StateHidden, timeout)
}

func (a *Actions) wait(ctx context.Context, loc Locator, state State, timeout time.Duration) error {
	if err := a.drv.Element(loc).WaitFor(ctx, state, timeout); err != nil {
		if IsTimeout(err) {
			a.log.Debug("Элемент не достиг состояния", zap.Stringer("locator", loc), zap.Stringer("state", state))
			return &ActionTimeout{Op: OpWait, Locator: loc, Timeout: timeout, Err: err}
		}
		a.log.Debug("Ошибка ожидания элемента", zap.Stringer("locator", loc), zap.Error(err))
		return fmt.Errorf("%s %s: %w", OpWait, loc, err)
	}
	a.log.Debug("Элемент в состоянии", zap.Stringer("locator", loc), zap.Stringer("state", state))
	return nil
}

func (a *Actions) IsEnabled(ctx context.Context, loc Locator) bool {
	enabled, err := a.drv.Element(loc).IsEnabled(ctx)
	if err != nil {
		a.log.Debug("Не удалось проверить доступность", zap.Stringer("locator", loc), zap.Error(err))
		return false
	}
	return enabled
}

func (a *Actions) Attribute(ctx context.Context, loc Locator, name string) (string, error) {
	value, err := a.drv.Element(loc).Attribute(ctx, name)
	if err != nil {
		a.log.Error("Не удалось прочитать атрибут", zap.Stringer("locator", loc), zap.String("attribute", name), zap.Error(err))
		return "", fmt.Errorf("атрибут %s у %s: %w", name, loc, err)
	}
	a.log.Debug("Атрибут прочитан", zap.Stringer("locator", loc), zap.String("attribute", name), zap.String("value", value))
	return value, nil
}

func (a *Actions) Value(ctx context.Context, loc Locator) (string, error) {
	value, err := a.drv.Element(loc).Value(ctx)
	if err != nil {
		a.log.Error("Не удалось прочитать значение поля", zap.Stringer("locator", loc), zap.Error(err))
		return "", fmt.Errorf("значение %s: %w", loc, err)
	}
	a.log.Debug("Значение поля прочитано", zap.Stringer("locator", loc), zap.String("value", value))
	return value, nil
}

// Count возвращает число найденных элементов без ожидания.
func (a *Actions) Count(ctx context.Context, loc Locator) int {
	elements, err := a.drv.Elements(ctx, loc)
	if err != nil {
		a.log.Debug("Элементы не найдены", zap.Stringer("locator", loc), zap.Error(err))
		return 0
	}
	return len(elements)
}

// Texts читает текст всех элементов по локатору в порядке документа.
func (a *Actions) Texts(ctx context.Context, loc Locator) ([]string, error) {
	elements, err := a.drv.Elements(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("поиск %s: %w", loc, err)
	}

	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, a.fail(OpRead, loc, err)
		}
		texts = append(texts, text)
	}
	a.log.Debug("Тексты прочитаны", zap.Stringer("locator", loc), zap.Strings("texts", texts))
	return texts, nil
}

func (a *Actions) CurrentURL() string {
	url := a.drv.URL()
	a.log.Debug("Текущий URL", zap.String("url", url))
	return url
}

func (a *Actions) Title(ctx context.Context) (string, error) {
	title, err := a.drv.Title(ctx)
	if err != nil {
		a.log.Error("Не удалось получить заголовок страницы", zap.Error(err))
		return "", err
	}
	a.log.Debug("Заголовок страницы", zap.String("title", title))
	return title, nil
}

func (a *Actions) Navigate(ctx context.Context, url string) error {
	if err := a.drv.Navigate(ctx, url); err != nil {
		a.log.Error("Ошибка навигации", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("навигация на %s: %w", url, err)
	}
	a.log.Debug("Страница открыта", zap.String("url", url))
	return nil
}

// WaitForURL ждёт перехода на адрес, содержащий fragment.
func (a *Actions) WaitForURL(ctx context.Context, fragment string) error {
	if err := a.drv.WaitForURL(ctx, fragment, a.timeout); err != nil {
		a.log.Debug("Адрес не совпал", zap.String("expected", fragment), zap.String("url", a.drv.URL()), zap.Error(err))
		return fmt.Errorf("ожидание адреса %s: %w", fragment, err)
	}
	return nil
}

func (a *Actions) fail(op Op, loc Locator, err error) error {
	if IsTimeout(err) {
		timeoutErr := &ActionTimeout{Op: op, Locator: loc, Timeout: a.timeout, Err: err}
		a.log.Error("Элемент не готов к действию", zap.String("op", string(op)), zap.Stringer("locator", loc), zap.Duration("timeout", a.timeout))
		return timeoutErr
	}
	a.log.Error("Ошибка действия с элементом", zap.String("op", string(op)), zap.Stringer("locator", loc), zap.Error(err))
	return fmt.Errorf("%s %s: %w", op, loc, err)
}
