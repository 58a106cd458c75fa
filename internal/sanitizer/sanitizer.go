// Package sanitizer маскирует секреты в текстах, которые уходят в лог и в
// протокол прогона: пароли, токены, номера карт, почту и телефоны.
package sanitizer

import "strings"

const Filtered = "[FILTERED]"

type Rule interface {
	Sanitize(text string) string
}

type Sanitizer struct {
	rules []Rule
}

// Default: набор правил для логов и протокола.
var Default = New()

func New(extra ...Rule) *Sanitizer {
	rules := []Rule{
		passwordRule{},
		tokenRule{},
		cardRule{},
		emailRule{},
		phoneRule{},
	}
	return &Sanitizer{rules: append(rules, extra...)}
}

func (s *Sanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}
	for _, rule := range s.rules {
		text = rule.Sanitize(text)
	}
	return text
}

// sensitiveFields: подстроки селекторов полей, значения которых не логируются.
var sensitiveFields = []string{
	"password", "пароль", "token", "secret", "card", "cvv", "cvc",
}

// Field возвращает значение, пригодное для лога. Поля вроде пароля
// заменяются маской, остальные проходят через Sanitize.
func (s *Sanitizer) Field(selector, value string) string {
	if value == "" {
		return value
	}
	lower := strings.ToLower(selector)
	for _, kw := range sensitiveFields {
		if strings.Contains(lower, kw) {
			return Filtered
		}
	}
	return s.Sanitize(value)
}
