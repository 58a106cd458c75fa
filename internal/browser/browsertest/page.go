// Package browsertest предоставляет страницу в памяти, реализующую
// browser.Driver, для тестов без настоящего браузера.
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"sauceDemo/internal/browser"
)

const pollInterval = 2 * time.Millisecond

var (
	_ browser.Driver      = (*Page)(nil)
	_ browser.Snapshotter = (*Page)(nil)
)

// Node: элемент страницы. Поля можно менять из OnClick под блокировкой страницы.
type Node struct {
	Tag      string
	Text     string
	Value    string
	Attrs    map[string]string
	Hidden   bool
	Disabled bool
	// AppearAfter откладывает появление элемента в DOM.
	AppearAfter time.Duration
	// OnClick вызывается после клика, страница уже заблокирована.
	OnClick func(p *Page)

	matches []browser.Locator
	addedAt time.Time
	clicks  int
}

func (n *Node) attached() bool {
	return time.Since(n.addedAt) >= n.AppearAfter
}

func (n *Node) visible() bool {
	return n.attached() && !n.Hidden
}

func (n *Node) match(loc browser.Locator) bool {
	if n.Tag != "" && loc == browser.CSS(n.Tag) {
		return true
	}
	for _, m := range n.matches {
		if m == loc {
			return true
		}
	}
	return false
}

// Page: однопоточная модель вкладки. Безопасна для вызова из нескольких
// горутин, но тесты используют её так же, как настоящий Driver: из одной.
type Page struct {
	mu       sync.Mutex
	nodes    []*Node
	url      string
	title    string
	routes   map[string]func(p *Page)
	dialogs  []browser.Dialog
	accepted []browser.Dialog
	attempts []browser.Locator
	clicks   []browser.Locator
	dialogQ  int
}

func New() *Page {
	return &Page{
		url:    "about:blank",
		routes: map[string]func(p *Page){},
	}
}

// Add кладёт элемент на страницу; он находится любым из переданных локаторов
// и, если задан Tag, локатором CSS(Tag).
func (p *Page) Add(n *Node, matches ...browser.Locator) *Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addLocked(n, matches...)
	return n
}

// AddLocked: Add для вызова из OnClick.
func (p *Page) AddLocked(n *Node, matches ...browser.Locator) *Node {
	p.addLocked(n, matches...)
	return n
}

func (p *Page) addLocked(n *Node, matches ...browser.Locator) {
	n.matches = append(n.matches, matches...)
	n.addedAt = time.Now()
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	p.nodes = append(p.nodes, n)
}

// ResetLocked очищает DOM, как при переходе на новую страницу.
func (p *Page) ResetLocked(url, title string) {
	p.nodes = nil
	p.url = url
	p.title = title
}

func (p *Page) Route(url string, build func(p *Page)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes[url] = build
}

func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

func (p *Page) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// PushDialog открывает нативный диалог.
func (p *Page) PushDialog(kind, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialogs = append(p.dialogs, browser.Dialog{Type: kind, Message: message})
}

func (p *Page) Accepted() []browser.Dialog {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]browser.Dialog(nil), p.accepted...)
}

// Attempts: локаторы, для которых вызывался WaitFor, по порядку.
func (p *Page) Attempts() []browser.Locator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]browser.Locator(nil), p.attempts...)
}

// Clicks: локаторы, по которым прошёл клик, по порядку.
func (p *Page) Clicks() []browser.Locator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]browser.Locator(nil), p.clicks...)
}

func (p *Page) ClickCount(n *Node) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return n.clicks
}

func (p *Page) DialogChecks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dialogQ
}

func (p *Page) first(loc browser.Locator) *Node {
	for _, n := range p.nodes {
		if n.match(loc) && n.attached() {
			return n
		}
	}
	return nil
}

func (p *Page) Element(loc browser.Locator) browser.Element {
	return &element{page: p, loc: loc}
}

func (p *Page) Elements(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []browser.Element
	for _, n := range p.nodes {
		if n.match(loc) && n.attached() {
			out = append(out, &element{page: p, loc: loc, node: n})
		}
	}
	return out, nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) Title(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title, nil
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	build, ok := p.routes[url]
	if !ok {
		return fmt.Errorf("нет маршрута %s", url)
	}
	p.ResetLocked(url, p.title)
	build(p)
	return nil
}

func (p *Page) WaitForURL(ctx context.Context, fragment string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if strings.Contains(p.URL(), fragment) {
			return nil
		}
		if time.Now().After(deadline) {
			return browser.ErrWaitTimeout("адрес не содержит %q", fragment)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (p *Page) AcceptDialog(ctx context.Context, wait time.Duration) (browser.Dialog, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dialogQ++
	if len(p.dialogs) == 0 {
		return browser.Dialog{}, false, nil
	}
	d := p.dialogs[0]
	p.dialogs = p.dialogs[1:]
	p.accepted = append(p.accepted, d)
	return d, true, nil
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	return []byte("\x89PNG fake"), nil
}

// Snapshot описывает видимые элементы по их первому локатору.
func (p *Page) Snapshot(ctx context.Context) (*browser.PageSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := &browser.PageSnapshot{URL: p.url, Title: p.title}
	for _, n := range p.nodes {
		if !n.visible() {
			continue
		}
		selector := n.Tag
		if len(n.matches) > 0 {
			selector = n.matches[0].Selector
		}
		snap.Elements = append(snap.Elements, browser.ElementInfo{
			Tag:         n.Tag,
			Text:        n.Text,
			Selector:    selector,
			Interactive: n.Tag == "button" || n.Tag == "input",
			InViewport:  true,
			Disabled:    n.Disabled,
		})
	}
	return snap, nil
}

type element struct {
	page *Page
	loc  browser.Locator
	// node фиксирован для элементов из Elements, иначе ищется заново.
	node *Node
}

func (e *element) String() string {
	return e.loc.String()
}

func (e *element) resolve() *Node {
	if e.node != nil {
		if e.node.attached() {
			return e.node
		}
		return nil
	}
	return e.page.first(e.loc)
}

func (e *element) WaitFor(ctx context.Context, state browser.State, timeout time.Duration) error {
	e.page.mu.Lock()
	e.page.attempts = append(e.page.attempts, e.loc)
	e.page.mu.Unlock()

	deadline := time.Now().Add(timeout)
	for {
		e.page.mu.Lock()
		n := e.resolve()
		var ok bool
		switch state {
		case browser.StateAttached:
			ok = n != nil
		case browser.StateVisible:
			ok = n != nil && n.visible()
		case browser.StateClickable:
			ok = n != nil && n.visible() && !n.Disabled
		case browser.StateHidden:
			ok = n == nil || !n.visible()
		}
		e.page.mu.Unlock()

		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return browser.ErrWaitTimeout("%s не достиг состояния %s за %v", e.loc, state, timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (e *element) Click(ctx context.Context) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()

	n := e.resolve()
	if n == nil {
		return fmt.Errorf("%s: %w", e.loc, browser.ErrNotFound)
	}
	if !n.visible() || n.Disabled {
		return fmt.Errorf("%s: %w", e.loc, browser.ErrNotActionable)
	}

	n.clicks++
	e.page.clicks = append(e.page.clicks, e.loc)
	if n.OnClick != nil {
		n.OnClick(e.page)
	}
	return nil
}

func (e *element) Clear(ctx context.Context) error {
	return e.with(func(n *Node) error {
		n.Value = ""
		return nil
	})
}

// Fill дописывает текст, как посимвольный ввод. Затирает только Clear.
func (e *element) Fill(ctx context.Context, text string) error {
	return e.with(func(n *Node) error {
		if n.Hidden {
			return fmt.Errorf("%s: %w", e.loc, browser.ErrNotActionable)
		}
		n.Value += text
		return nil
	})
}

func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.with(func(n *Node) error {
		text = n.Text
		return nil
	})
	return text, err
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	var value string
	err := e.with(func(n *Node) error {
		value = n.Attrs[name]
		return nil
	})
	return value, err
}

func (e *element) Value(ctx context.Context) (string, error) {
	var value string
	err := e.with(func(n *Node) error {
		value = n.Value
		return nil
	})
	return value, err
}

func (e *element) IsVisible(ctx context.Context) (bool, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	n := e.resolve()
	return n != nil && n.visible(), nil
}

func (e *element) IsEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := e.with(func(n *Node) error {
		enabled = !n.Disabled
		return nil
	})
	return enabled, err
}

func (e *element) with(fn func(n *Node) error) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	n := e.resolve()
	if n == nil {
		return fmt.Errorf("%s: %w", e.loc, browser.ErrNotFound)
	}
	return fn(n)
}
