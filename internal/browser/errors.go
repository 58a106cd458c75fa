package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

var (
	// ErrNotFound: кандидат не нашёлся за время пробы.
	ErrNotFound = errors.New("элемент не найден")
	// ErrNotActionable: элемент есть, но скрыт или выключен.
	ErrNotActionable = errors.New("элемент недоступен для действия")
	// ErrUnsupportedSelector: движок не умеет вычислять такой селектор.
	ErrUnsupportedSelector = errors.New("селектор не поддерживается движком")
	// ErrNotLaunched: сессия закрыта или браузер не запущен.
	ErrNotLaunched = errors.New("браузер не запущен")
)

type Op string

const (
	OpClick Op = "click"
	OpType  Op = "type"
	OpRead  Op = "read"
	OpWait  Op = "wait"
)

// ActionTimeout означает, что элемент не стал готов к действию за отведённое время.
type ActionTimeout struct {
	Op      Op
	Locator Locator
	Timeout time.Duration
	Err     error
}

func (e *ActionTimeout) Error() string {
	return fmt.Sprintf("%s %s: элемент не готов за %v", e.Op, e.Locator, e.Timeout)
}

func (e *ActionTimeout) Unwrap() error {
	return e.Err
}

// IsTimeout распознаёт таймаут движка и истёкший дедлайн контекста.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var at *ActionTimeout
	if errors.As(err, &at) {
		return true
	}
	return errors.Is(err, playwright.ErrTimeout) || errors.Is(err, errDeadline) ||
		errors.Is(err, context.DeadlineExceeded)
}

// errDeadline отдают реализации Element, когда ожидание упёрлось в таймаут
// без участия playwright.
var errDeadline = errors.New("deadline exceeded")

// ErrWaitTimeout оборачивает errDeadline для реализаций Driver вне этого пакета.
func ErrWaitTimeout(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errDeadline)...)
}

// Outcome: результат попытки действия над кандидатом.
type Outcome int

const (
	Succeeded Outcome = iota
	NotFound
	NotActionable
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case NotFound:
		return "not-found"
	case NotActionable:
		return "not-actionable"
	default:
		return "unknown"
	}
}
