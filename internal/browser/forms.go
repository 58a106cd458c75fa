package browser

import (
	"context"

	"go.uber.org/zap"
)

// Field: поле формы и значение для него.
type Field struct {
	Locator Locator
	Value   string
}

// FillForm заполняет поля по порядку через TypeSafely. Первая ошибка
// прерывает заполнение, остальные поля не трогаются.
func (a *Actions) FillForm(ctx context.Context, fields ...Field) error {
	for _, f := range fields {
		if err := a.TypeSafely(ctx, f.Locator, f.Value); err != nil {
			return err
		}
	}
	a.log.Debug("Форма заполнена", zap.Int("fields", len(fields)))
	return nil
}

// ReadForm читает текущие значения полей. Ненайденное поле даёт пустую строку.
func (a *Actions) ReadForm(ctx context.Context, locators ...Locator) map[Locator]string {
	values := make(map[Locator]string, len(locators))
	for _, loc := range locators {
		value, err := a.drv.Element(loc).Value(ctx)
		if err != nil {
			a.log.Debug("Поле формы не прочитано", zap.Stringer("locator", loc), zap.Error(err))
		}
		values[loc] = value
	}
	return values
}

// MissingFields возвращает поля, видимые на странице, но оставшиеся пустыми.
func (a *Actions) MissingFields(ctx context.Context, locators ...Locator) []Locator {
	var missing []Locator
	values := a.ReadForm(ctx, locators...)
	for _, loc := range locators {
		if values[loc] == "" && a.IsVisible(ctx, loc) {
			missing = append(missing, loc)
		}
	}
	return missing
}
