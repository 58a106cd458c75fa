package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElements(t *testing.T) {
	raw := []any{
		map[string]any{
			"tag":         "input",
			"text":        "",
			"selector":    "[data-test='login-button']",
			"interactive": true,
			"inViewport":  true,
			"disabled":    false,
		},
		map[string]any{"tag": "div", "text": "no selector"},
		"garbage",
		map[string]any{"tag": "span", "text": "Products", "selector": "[data-test='title']"},
	}

	elements := parseElements(raw)

	require.Len(t, elements, 2)
	assert.Equal(t, ElementInfo{
		Tag:         "input",
		Selector:    "[data-test='login-button']",
		Interactive: true,
		InViewport:  true,
	}, elements[0])
	assert.Equal(t, "Products", elements[1].Text)
	assert.False(t, elements[1].Interactive)
}

func TestParseElementsUnexpectedShape(t *testing.T) {
	assert.Empty(t, parseElements(nil))
	assert.Empty(t, parseElements(map[string]any{}))
}

func TestParseStringsDeduplicates(t *testing.T) {
	raw := []any{
		"Error: First Name is required",
		"Error: First Name is required",
		"",
		42,
	}

	assert.Equal(t, []string{"Error: First Name is required"}, parseStrings(raw))
	assert.Nil(t, parseStrings("not a list"))
}
