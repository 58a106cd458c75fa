package browser

import (
	"context"
	"fmt"

	"sauceDemo/internal/extractor"
)

// PageSnapshot: состояние вкладки на момент падения теста.
type PageSnapshot struct {
	URL      string        `json:"url"`
	Title    string        `json:"title"`
	Elements []ElementInfo `json:"elements"`
	Errors   []string      `json:"errors,omitempty"`
}

type ElementInfo struct {
	Tag         string `json:"tag"`
	Text        string `json:"text,omitempty"`
	Selector    string `json:"selector"`
	Interactive bool   `json:"interactive"`
	InViewport  bool   `json:"inViewport"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// Snapshotter реализуют драйверы, умеющие снимать состояние страницы.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*PageSnapshot, error)
}

func (s *Session) Snapshot(ctx context.Context) (*PageSnapshot, error) {
	snapshot, err := extractor.ExtractPageSnapshot(ctx, s.page)
	if err != nil {
		return nil, fmt.Errorf("ошибка извлечения snapshot: %w", err)
	}

	elements := make([]ElementInfo, len(snapshot.Elements))
	for i, elem := range snapshot.Elements {
		elements[i] = ElementInfo{
			Tag:         elem.Tag,
			Text:        elem.Text,
			Selector:    elem.Selector,
			Interactive: elem.Interactive,
			InViewport:  elem.InViewport,
			Disabled:    elem.Disabled,
		}
	}

	return &PageSnapshot{
		URL:      snapshot.URL,
		Title:    snapshot.Title,
		Elements: elements,
		Errors:   snapshot.Errors,
	}, nil
}
