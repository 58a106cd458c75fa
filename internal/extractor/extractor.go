// Package extractor снимает с открытой вкладки диагностический снимок:
// адрес, заголовок, видимые элементы и показанные ошибки.
package extractor

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// maxElements ограничивает снимок, чтобы отчёт о падении оставался читаемым.
const maxElements = 150

type ElementInfo struct {
	Tag         string
	Text        string
	Selector    string
	Interactive bool
	InViewport  bool
	Disabled    bool
}

type PageSnapshot struct {
	URL      string
	Title    string
	Elements []ElementInfo
	Errors   []string
}

func ExtractPageSnapshot(ctx context.Context, page playwright.Page) (*PageSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title, err := page.Title()
	if err != nil {
		title = ""
	}

	elements, err := extractElements(page)
	if err != nil {
		return nil, fmt.Errorf("ошибка извлечения элементов: %w", err)
	}

	errs, err := extractErrors(page)
	if err != nil {
		errs = nil
	}

	return &PageSnapshot{
		URL:      page.URL(),
		Title:    title,
		Elements: elements,
		Errors:   errs,
	}, nil
}

const elementsJS = `
	(limit) => {
		const interactive = 'button, a, input, select, textarea, [role=button], [onclick]';
		const out = [];

		function selectorFor(el) {
			const dataTest = el.getAttribute('data-test');
			if (dataTest) {
				return "[data-test='" + dataTest + "']";
			}
			if (el.id) {
				return '#' + el.id;
			}
			if (el.name) {
				return "[name='" + el.name + "']";
			}
			const cls = (el.className && typeof el.className === 'string')
				? el.className.split(' ').filter(Boolean)[0] : '';
			return cls ? el.tagName.toLowerCase() + '.' + cls : '';
		}

		for (const el of document.querySelectorAll('[data-test], ' + interactive)) {
			if (out.length >= limit) break;

			const rect = el.getBoundingClientRect();
			const style = window.getComputedStyle(el);
			if (style.display === 'none' || style.visibility === 'hidden' || rect.width === 0 || rect.height === 0) {
				continue;
			}

			const selector = selectorFor(el);
			if (!selector) continue;

			out.push({
				tag: el.tagName.toLowerCase(),
				text: (el.innerText || el.value || '').trim().substring(0, 120),
				selector: selector,
				interactive: el.matches(interactive),
				inViewport: rect.top >= 0 && rect.left >= 0 &&
					rect.bottom <= window.innerHeight && rect.right <= window.innerWidth,
				disabled: !!el.disabled
			});
		}
		return out;
	}
`

func extractElements(page playwright.Page) ([]ElementInfo, error) {
	result, err := page.Evaluate(elementsJS, maxElements)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения JavaScript: %w", err)
	}
	return parseElements(result), nil
}

func parseElements(result any) []ElementInfo {
	data, ok := result.([]any)
	if !ok {
		return []ElementInfo{}
	}

	elements := make([]ElementInfo, 0, len(data))
	for _, item := range data {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if elem := parseElementInfo(m); elem != nil {
			elements = append(elements, *elem)
		}
	}
	return elements
}

func parseElementInfo(data map[string]any) *ElementInfo {
	elem := &ElementInfo{}

	if tag, ok := data["tag"].(string); ok {
		elem.Tag = tag
	}
	if text, ok := data["text"].(string); ok {
		elem.Text = text
	}
	if selector, ok := data["selector"].(string); ok {
		elem.Selector = selector
	}
	if interactive, ok := data["interactive"].(bool); ok {
		elem.Interactive = interactive
	}
	if inViewport, ok := data["inViewport"].(bool); ok {
		elem.InViewport = inViewport
	}
	if disabled, ok := data["disabled"].(bool); ok {
		elem.Disabled = disabled
	}

	if elem.Selector == "" {
		return nil
	}
	return elem
}

// extractErrors собирает тексты видимых сообщений об ошибках формы.
func extractErrors(page playwright.Page) ([]string, error) {
	result, err := page.Evaluate(`() => Array.from(
		document.querySelectorAll("[data-test='error'], .error-message-container"))
		.map(el => (el.innerText || '').trim())
		.filter(Boolean)`)
	if err != nil {
		return nil, err
	}
	return parseStrings(result), nil
}

func parseStrings(result any) []string {
	data, ok := result.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(data))
	seen := make(map[string]bool, len(data))
	for _, item := range data {
		s, ok := item.(string)
		if !ok || s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
