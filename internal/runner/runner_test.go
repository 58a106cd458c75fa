package runner

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sauceDemo/internal/browser"
	"sauceDemo/internal/browser/browsertest"
	"sauceDemo/internal/config"
	"sauceDemo/internal/database"
	"sauceDemo/internal/pages"
	"sauceDemo/internal/report"
)

const baseURL = "https://www.saucedemo.com/"

type tab struct {
	*browsertest.Page
	closed bool
}

func (t *tab) Close() error {
	t.closed = true
	return nil
}

// ctxStore отвергает отменённый контекст, как gorm с WithContext.
type ctxStore struct {
	mu       sync.Mutex
	cases    []database.TestCase
	finished string
}

func (s *ctxStore) CreateRun(ctx context.Context, run *database.TestRun) error {
	return ctx.Err()
}

func (s *ctxStore) FinishRun(ctx context.Context, runID, status string, finishedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = status
	return nil
}

func (s *ctxStore) AddCase(ctx context.Context, c *database.TestCase) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = append(s.cases, *c)
	return nil
}

func testConfig(t *testing.T) *config.Cfg {
	return &config.Cfg{
		App: config.App{BaseURL: baseURL, ScreenshotDir: t.TempDir()},
		Browser: config.Browser{
			Name:          "chromium",
			ActionTimeout: 50 * time.Millisecond,
			ProbeTimeout:  5 * time.Millisecond,
		},
	}
}

func TestRunRecordsEachFlow(t *testing.T) {
	cfg := testConfig(t)
	log := zaptest.NewLogger(t)
	rec := report.NewRecorder(nil, log, report.Options{Dir: cfg.App.ScreenshotDir})

	var tabs []*tab
	open := func(ctx context.Context) (Session, error) {
		p := browsertest.New()
		p.Route(baseURL, func(p *browsertest.Page) {
			p.AddLocked(&browsertest.Node{Tag: "div", Text: "Swag Labs"}, browser.CSS(".login_logo"))
		})
		tb := &tab{Page: p}
		tabs = append(tabs, tb)
		return tb, nil
	}

	flows := []pages.Flow{
		{Name: "opens", Run: func(ctx context.Context, d pages.Deps, url string, o pages.Order) error {
			_, err := pages.Open(ctx, d, url)
			return err
		}},
		{Name: "fails", Run: func(ctx context.Context, d pages.Deps, url string, o pages.Order) error {
			if _, err := pages.Open(ctx, d, url); err != nil {
				return err
			}
			return errors.New("сумма не совпала")
		}},
	}

	summary, err := New(cfg, log, rec, open).Run(context.Background(), flows, pages.Order{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, database.StatusFailed, summary.Status())

	require.Len(t, tabs, 2)
	for _, tb := range tabs {
		assert.True(t, tb.closed)
	}

	entries, err := os.ReadDir(rec.Dir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"fails.png", "fails.json"}, names)
}

func TestRunFailsCaseWhenTabCannotOpen(t *testing.T) {
	cfg := testConfig(t)
	log := zaptest.NewLogger(t)
	rec := report.NewRecorder(nil, log, report.Options{Dir: cfg.App.ScreenshotDir})

	open := func(ctx context.Context) (Session, error) {
		return nil, browser.ErrNotLaunched
	}
	flow := pages.Flow{Name: "never", Run: func(context.Context, pages.Deps, string, pages.Order) error {
		t.Fatal("сценарий не должен запускаться")
		return nil
	}}

	summary, err := New(cfg, log, rec, open).Run(context.Background(), []pages.Flow{flow}, pages.Order{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
}

func TestRunSkipsAfterCancel(t *testing.T) {
	cfg := testConfig(t)
	log := zaptest.NewLogger(t)
	rec := report.NewRecorder(nil, log, report.Options{Dir: cfg.App.ScreenshotDir})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	open := func(ctx context.Context) (Session, error) {
		t.Fatal("вкладка не должна открываться")
		return nil, nil
	}
	flow := pages.Flow{Name: "late"}

	summary, err := New(cfg, log, rec, open).Run(ctx, []pages.Flow{flow}, pages.Order{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
}

func TestRunStoresCasesAfterCancel(t *testing.T) {
	cfg := testConfig(t)
	log := zaptest.NewLogger(t)
	store := &ctxStore{}
	rec := report.NewRecorder(store, log, report.Options{Dir: cfg.App.ScreenshotDir})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	open := func(ctx context.Context) (Session, error) {
		return &tab{Page: browsertest.New()}, nil
	}
	flows := []pages.Flow{
		{Name: "interrupted", Run: func(ctx context.Context, d pages.Deps, url string, o pages.Order) error {
			cancel()
			return ctx.Err()
		}},
		{Name: "late"},
	}

	summary, err := New(cfg, log, rec, open).Run(ctx, flows, pages.Order{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)

	require.Len(t, store.cases, 2)
	assert.Equal(t, "interrupted", store.cases[0].Name)
	assert.Equal(t, database.StatusFailed, store.cases[0].Status)
	assert.NotEmpty(t, store.cases[0].ScreenshotPath)
	assert.Equal(t, "late", store.cases[1].Name)
	assert.Equal(t, database.StatusSkipped, store.cases[1].Status)
	assert.Equal(t, database.StatusFailed, store.finished)
}

func TestEngineConfig(t *testing.T) {
	got := EngineConfig(config.Browser{
		Name:            "firefox",
		Headless:        true,
		ActionTimeout:   5 * time.Second,
		NavigateTimeout: 20 * time.Second,
	})

	assert.Equal(t, browser.Config{
		Name:            "firefox",
		Headless:        true,
		Timeout:         5 * time.Second,
		NavigateTimeout: 20 * time.Second,
	}, got)
}
