package browser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sauceDemo/internal/browser"
)

func TestLocatorEngineSelector(t *testing.T) {
	assert.Equal(t, "css=.modal", browser.CSS(".modal").EngineSelector())
	assert.Equal(t, "xpath=//button[text()='OK']", browser.XPath("//button[text()='OK']").EngineSelector())
	assert.Equal(t, "css=[data-test='login-button']", browser.TestID("login-button").String())
}

func TestLocatorSupported(t *testing.T) {
	tests := []struct {
		name string
		loc  browser.Locator
		want bool
	}{
		{"plain css", browser.CSS("button[aria-label='OK']"), true},
		{"jquery contains", browser.CSS("button:contains('OK')"), false},
		{"jquery eq", browser.CSS("li:eq(2)"), false},
		{"xpath contains is fine", browser.XPath("//button[contains(text(), 'OK')]"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.Supported())
		})
	}
}

func TestLocatorValidate(t *testing.T) {
	require.NoError(t, browser.CSS("#user-name").Validate())
	require.NoError(t, browser.XPath("(//button)[1]").Validate())

	assert.Error(t, browser.CSS("   ").Validate())
	assert.Error(t, browser.CSS("https://www.saucedemo.com/").Validate())
	assert.Error(t, browser.XPath("button").Validate())

	err := browser.CSS("div:contains('x')").Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, browser.ErrUnsupportedSelector))
}

func TestDefaultCandidatesAreSupported(t *testing.T) {
	for _, loc := range browser.DismissCandidates {
		assert.NoError(t, loc.Validate(), loc.String())
	}
}
