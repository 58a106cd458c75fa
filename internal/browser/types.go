package browser

import (
	"context"
	"time"
)

// State: условие готовности элемента, которого ждёт WaitFor.
type State int

const (
	StateAttached State = iota
	StateVisible
	// StateClickable: видим и включён.
	StateClickable
	StateHidden
)

func (s State) String() string {
	switch s {
	case StateAttached:
		return "attached"
	case StateVisible:
		return "visible"
	case StateClickable:
		return "clickable"
	case StateHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Driver: то, что нужно от движка автоматизации одной вкладке теста.
// Один Driver принадлежит одному тесту и не разделяется между горутинами.
type Driver interface {
	Element(loc Locator) Element
	Elements(ctx context.Context, loc Locator) ([]Element, error)
	URL() string
	Title(ctx context.Context) (string, error)
	Navigate(ctx context.Context, url string) error
	// WaitForURL ждёт, пока адрес страницы не станет содержать fragment.
	WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error
	// AcceptDialog ждёт нативный диалог не дольше wait и принимает его.
	// ok=false, если диалога не было.
	AcceptDialog(ctx context.Context, wait time.Duration) (dialog Dialog, ok bool, err error)
	Screenshot(ctx context.Context) ([]byte, error)
}

// Element это ленивая ссылка на элемент, поиск происходит при каждом вызове.
type Element interface {
	WaitFor(ctx context.Context, state State, timeout time.Duration) error
	Click(ctx context.Context) error
	Clear(ctx context.Context) error
	Fill(ctx context.Context, text string) error
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	Value(ctx context.Context) (string, error)
	IsVisible(ctx context.Context) (bool, error)
	IsEnabled(ctx context.Context) (bool, error)
	String() string
}

// Dialog: нативный alert/confirm/prompt.
type Dialog struct {
	Type    string
	Message string
}

type Config struct {
	Name            string
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	Display         string
	Timeout         time.Duration
	NavigateTimeout time.Duration
}
