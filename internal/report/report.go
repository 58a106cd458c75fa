// Package report ведёт протокол прогона: статусы тестов, скриншоты и снимки
// страницы при падении. Результаты пишутся в Store, если он задан.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"sauceDemo/internal/browser"
	"sauceDemo/internal/database"
	"sauceDemo/internal/sanitizer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Store: хранилище результатов. Реализован database.RunRepository.
type Store interface {
	CreateRun(ctx context.Context, run *database.TestRun) error
	FinishRun(ctx context.Context, runID, status string, finishedAt time.Time) error
	AddCase(ctx context.Context, c *database.TestCase) error
}

type Options struct {
	// Dir: корень для скриншотов, внутри создаётся каталог прогона.
	Dir     string
	Browser string
	BaseURL string
}

type Summary struct {
	RunID   string
	Passed  int
	Failed  int
	Skipped int
}

func (s Summary) Status() string {
	if s.Failed > 0 {
		return database.StatusFailed
	}
	return database.StatusPassed
}

type Recorder struct {
	store Store
	log   *zap.Logger
	opts  Options
	runID string

	mu      sync.Mutex
	summary Summary
}

// NewRecorder создаёт протокол с новым идентификатором прогона. store может быть nil.
func NewRecorder(store Store, log *zap.Logger, opts Options) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.NewString()
	return &Recorder{
		store:   store,
		log:     log.Named("report").With(zap.String("run", runID)),
		opts:    opts,
		runID:   runID,
		summary: Summary{RunID: runID},
	}
}

func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) Dir() string {
	return filepath.Join(r.opts.Dir, r.runID)
}

func (r *Recorder) Start(ctx context.Context) error {
	r.log.Info("Прогон начат", zap.String("browser", r.opts.Browser), zap.String("url", r.opts.BaseURL))
	if r.store == nil {
		return nil
	}

	run := &database.TestRun{
		RunID:     r.runID,
		Browser:   r.opts.Browser,
		BaseURL:   r.opts.BaseURL,
		Status:    database.StatusRunning,
		StartedAt: time.Now(),
	}
	if err := r.store.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("запись прогона: %w", err)
	}
	return nil
}

// Finish закрывает прогон и возвращает итог.
func (r *Recorder) Finish(ctx context.Context) (Summary, error) {
	summary := r.Summary()
	r.log.Info("Прогон завершён",
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped))

	if r.store == nil {
		return summary, nil
	}
	if err := r.store.FinishRun(ctx, r.runID, summary.Status(), time.Now()); err != nil {
		return summary, fmt.Errorf("завершение прогона: %w", err)
	}
	return summary, nil
}

func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// Case начинает учёт одного теста.
func (r *Recorder) Case(name string) *Case {
	return &Case{rec: r, name: name, started: time.Now()}
}

// Screenshot сохраняет скриншот вкладки в каталог прогона и, если драйвер
// умеет, снимок страницы рядом в JSON. Возвращает пути к файлам.
func (r *Recorder) Screenshot(ctx context.Context, drv browser.Driver, step string) (shot, snap string, err error) {
	dir := r.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("создание каталога %s: %w", dir, err)
	}

	base := fileName(step)
	png, err := drv.Screenshot(ctx)
	if err != nil {
		return "", "", fmt.Errorf("скриншот %s: %w", step, err)
	}
	shot = filepath.Join(dir, base+".png")
	if err := os.WriteFile(shot, png, 0o644); err != nil {
		return "", "", fmt.Errorf("запись скриншота: %w", err)
	}

	s, ok := drv.(browser.Snapshotter)
	if !ok {
		return shot, "", nil
	}
	page, err := s.Snapshot(ctx)
	if err != nil {
		r.log.Warn("Не удалось снять состояние страницы", zap.String("step", step), zap.Error(err))
		return shot, "", nil
	}
	for i := range page.Elements {
		page.Elements[i].Text = sanitizer.Default.Sanitize(page.Elements[i].Text)
	}
	raw, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return shot, "", fmt.Errorf("сериализация снимка: %w", err)
	}
	snap = filepath.Join(dir, base+".json")
	if err := os.WriteFile(snap, raw, 0o644); err != nil {
		return shot, "", fmt.Errorf("запись снимка: %w", err)
	}
	return shot, snap, nil
}

func fileName(step string) string {
	name := strings.Trim(unsafeName.ReplaceAllString(step, "_"), "_")
	if name == "" {
		return "step"
	}
	return name
}

func (r *Recorder) record(ctx context.Context, c *database.TestCase) {
	r.mu.Lock()
	switch c.Status {
	case database.StatusPassed:
		r.summary.Passed++
	case database.StatusFailed:
		r.summary.Failed++
	case database.StatusSkipped:
		r.summary.Skipped++
	}
	r.mu.Unlock()

	fields := []zap.Field{
		zap.String("test", c.Name),
		zap.String("status", c.Status),
		zap.Int64("ms", c.DurationMs),
	}
	if c.Error != "" {
		fields = append(fields, zap.String("error", c.Error))
	}
	if c.Status == database.StatusFailed {
		r.log.Error("Тест упал", fields...)
	} else {
		r.log.Info("Тест завершён", fields...)
	}

	if r.store == nil {
		return
	}
	if err := r.store.AddCase(ctx, c); err != nil {
		r.log.Warn("Не удалось сохранить результат теста", zap.String("test", c.Name), zap.Error(err))
	}
}

// Case: один тест прогона. Итог фиксируется одним из Pass, Fail, Skip;
// повторные вызовы игнорируются.
type Case struct {
	rec     *Recorder
	name    string
	started time.Time

	mu   sync.Mutex
	done bool
}

func (c *Case) Pass(ctx context.Context) {
	if c.claim() {
		c.finish(ctx, database.StatusPassed, "", "", "")
	}
}

func (c *Case) Skip(ctx context.Context, reason string) {
	if c.claim() {
		c.finish(ctx, database.StatusSkipped, reason, "", "")
	}
}

// Fail снимает вкладку, если drv не nil, и записывает падение.
func (c *Case) Fail(ctx context.Context, drv browser.Driver, cause error) {
	if !c.claim() {
		return
	}

	var shot, snap string
	if drv != nil {
		var err error
		shot, snap, err = c.rec.Screenshot(ctx, drv, c.name)
		if err != nil {
			c.rec.log.Warn("Скриншот падения не сохранён", zap.String("test", c.name), zap.Error(err))
		}
	}

	msg := ""
	if cause != nil {
		msg = sanitizer.Default.Sanitize(cause.Error())
	}
	c.finish(ctx, database.StatusFailed, msg, shot, snap)
}

// claim занимает итог теста; false, если он уже есть.
func (c *Case) claim() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return false
	}
	c.done = true
	return true
}

func (c *Case) finish(ctx context.Context, status, msg, shot, snap string) {
	c.rec.record(ctx, &database.TestCase{
		RunID:          c.rec.runID,
		Name:           c.name,
		Status:         status,
		Error:          msg,
		ScreenshotPath: shot,
		SnapshotPath:   snap,
		DurationMs:     time.Since(c.started).Milliseconds(),
	})
}
