package browser_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sauceDemo/internal/browser"
	"sauceDemo/internal/browser/browsertest"
)

const probeTimeout = 15 * time.Millisecond

func TestProbeSelectsFirstActionableCandidate(t *testing.T) {
	ctx := context.Background()
	page := browsertest.New()

	missing := browser.CSS(".nonexistent")
	cancel := browser.CSS(".cancel-btn")
	ok := browser.XPath("//button[text()='OK']")

	page.Add(&browsertest.Node{Tag: "button", Text: "Cancel", Hidden: true}, cancel)
	okBtn := page.Add(&browsertest.Node{Text: "OK"}, ok)

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)
	res := prober.Probe(ctx, []browser.Locator{missing, cancel, ok})

	require.True(t, res.Found())
	assert.Equal(t, ok, res.Locator)
	assert.False(t, res.Heuristic)
	assert.Equal(t, []browser.Locator{missing, cancel, ok}, res.Attempts)
	assert.Equal(t, []browser.Locator{ok}, page.Clicks())
	assert.Equal(t, 1, page.ClickCount(okBtn))
}

func TestProbeStopsAtFirstSuccess(t *testing.T) {
	ctx := context.Background()
	page := browsertest.New()

	first := browser.CSS("button[aria-label='OK']")
	second := browser.XPath("//button[contains(text(), 'OK')]")
	page.Add(&browsertest.Node{Text: "OK"}, first, second)

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)
	res := prober.Probe(ctx, []browser.Locator{first, second})

	require.True(t, res.Found())
	assert.Equal(t, first, res.Locator)
	assert.Equal(t, []browser.Locator{first}, page.Attempts())
	assert.Len(t, page.Clicks(), 1)
}

func TestProbeSkipsUnsupportedSelectors(t *testing.T) {
	ctx := context.Background()
	page := browsertest.New()

	unsupported := browser.CSS("button:contains('OK')")
	ok := browser.CSS("[data-test='OK']")
	page.Add(&browsertest.Node{Text: "OK"}, unsupported, ok)

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)
	res := prober.Probe(ctx, []browser.Locator{unsupported, ok})

	require.True(t, res.Found())
	assert.Equal(t, ok, res.Locator)
	assert.Equal(t, []browser.Locator{ok}, res.Attempts)
	assert.NotContains(t, page.Attempts(), unsupported)
}

func TestProbeFallsBackToKeywordButtons(t *testing.T) {
	ctx := context.Background()
	page := browsertest.New()

	page.Add(&browsertest.Node{Tag: "button", Text: "Add to cart"})
	page.Add(&browsertest.Node{Tag: "button", Text: "OK", Disabled: true})
	page.Add(&browsertest.Node{Tag: "button", Text: "Dismiss", Hidden: true})
	closeBtn := page.Add(&browsertest.Node{Tag: "button", Text: "  CLOSE  "})

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)
	res := prober.Probe(ctx, []browser.Locator{browser.CSS(".nonexistent")})

	require.True(t, res.Found())
	assert.True(t, res.Heuristic)
	assert.Equal(t, "CLOSE", res.Text)
	assert.Equal(t, 1, page.ClickCount(closeBtn))
	assert.Len(t, page.Clicks(), 1)
}

func TestProbeNothingToClick(t *testing.T) {
	ctx := context.Background()
	page := browsertest.New()
	page.Add(&browsertest.Node{Tag: "button", Text: "Add to cart"})

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)
	res := prober.Probe(ctx, []browser.Locator{browser.CSS(".nonexistent"), browser.XPath("//button[text()='OK']")})

	assert.False(t, res.Found())
	assert.Equal(t, browser.NotFound, res.Outcome)
	assert.Len(t, res.Attempts, 2)
	assert.Empty(t, page.Clicks())
}

func TestProbeReportsNotActionable(t *testing.T) {
	ctx := context.Background()
	page := browsertest.New()
	cancel := browser.CSS(".cancel-btn")
	page.Add(&browsertest.Node{Hidden: true}, cancel)

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)
	res := prober.Probe(ctx, []browser.Locator{cancel})

	assert.Equal(t, browser.NotActionable, res.Outcome)
	assert.Empty(t, page.Clicks())
}

func TestProbeUsesShortTimeout(t *testing.T) {
	ctx := context.Background()
	page := browsertest.New()
	late := browser.CSS(".late")
	page.Add(&browsertest.Node{AppearAfter: time.Second}, late)

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)

	start := time.Now()
	res := prober.Probe(ctx, []browser.Locator{late})

	assert.False(t, res.Found())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestProbeStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page := browsertest.New()
	page.Add(&browsertest.Node{}, browser.CSS(".ok"))

	prober := browser.NewProber(page, zaptest.NewLogger(t), probeTimeout)
	res := prober.Probe(ctx, []browser.Locator{browser.CSS(".ok")})

	assert.False(t, res.Found())
	assert.Empty(t, page.Attempts())
}
