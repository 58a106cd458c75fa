package browser

import (
	"fmt"
	"strings"
)

type Strategy int

const (
	StrategyCSS Strategy = iota
	StrategyXPath
)

func (s Strategy) String() string {
	switch s {
	case StrategyCSS:
		return "css"
	case StrategyXPath:
		return "xpath"
	default:
		return "unknown"
	}
}

// Locator описывает, как найти элемент. Значение неизменяемое, страницы
// объявляют свои локаторы один раз на уровне пакета.
type Locator struct {
	Strategy Strategy
	Selector string
}

func CSS(selector string) Locator {
	return Locator{Strategy: StrategyCSS, Selector: selector}
}

func XPath(selector string) Locator {
	return Locator{Strategy: StrategyXPath, Selector: selector}
}

// TestID строит локатор по атрибуту data-test, которым размечен Swag Labs.
func TestID(id string) Locator {
	return CSS("[data-test='" + id + "']")
}

func (l Locator) String() string {
	return l.Strategy.String() + "=" + l.Selector
}

// EngineSelector возвращает селектор в синтаксисе движка. Префикс задаёт
// движку диалект явно, без угадывания по началу строки.
func (l Locator) EngineSelector() string {
	switch l.Strategy {
	case StrategyXPath:
		return "xpath=" + l.Selector
	default:
		return "css=" + l.Selector
	}
}

// unsupportedPseudo: псевдоклассы jQuery, которых нет в CSS движка.
var unsupportedPseudo = []string{":contains(", ":eq(", ":gt(", ":lt("}

// Supported сообщает, может ли движок вычислить селектор. Неподдерживаемые
// кандидаты пропускаются без попытки поиска.
func (l Locator) Supported() bool {
	if l.Strategy != StrategyCSS {
		return true
	}
	for _, pseudo := range unsupportedPseudo {
		if strings.Contains(l.Selector, pseudo) {
			return false
		}
	}
	return true
}

// Validate проверяет, что селектор вообще похож на селектор.
func (l Locator) Validate() error {
	selector := strings.TrimSpace(l.Selector)
	if selector == "" {
		return fmt.Errorf("селектор не может быть пустым")
	}

	if strings.HasPrefix(selector, "http://") || strings.HasPrefix(selector, "https://") || strings.Contains(selector, "://") {
		return fmt.Errorf("селектор не может быть URL: %s", l.Selector)
	}

	if !l.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedSelector, l)
	}

	if l.Strategy == StrategyXPath && !strings.HasPrefix(selector, "/") && !strings.HasPrefix(selector, "(") {
		return fmt.Errorf("xpath должен начинаться с '/' или '(': %s", l.Selector)
	}

	return nil
}
