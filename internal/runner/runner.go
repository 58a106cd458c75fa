// Package runner прогоняет сценарии магазина: на каждый сценарий своя
// вкладка, итог каждого пишется в протокол прогона.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sauceDemo/internal/browser"
	"sauceDemo/internal/config"
	"sauceDemo/internal/pages"
	"sauceDemo/internal/report"
)

// Session: вкладка, которую runner закрывает после сценария.
type Session interface {
	browser.Driver
	Close() error
}

// Opener открывает новую изолированную вкладку.
type Opener func(ctx context.Context) (Session, error)

// FromEngine открывает вкладки запущенного движка.
func FromEngine(e *browser.Engine) Opener {
	return func(ctx context.Context) (Session, error) {
		return e.NewSession(ctx)
	}
}

// EngineConfig переводит настройки окружения в параметры движка.
func EngineConfig(cfg config.Browser) browser.Config {
	return browser.Config{
		Name:            cfg.Name,
		Headless:        cfg.Headless,
		UserDataDir:     cfg.UserDataDir,
		BrowsersPath:    cfg.BrowsersPath,
		Display:         cfg.Display,
		Timeout:         cfg.ActionTimeout,
		NavigateTimeout: cfg.NavigateTimeout,
	}
}

// NewDeps собирает зависимости страниц для одной вкладки.
func NewDeps(drv browser.Driver, cfg config.Browser, log *zap.Logger) pages.Deps {
	settle := cfg.SettleTime
	if settle == 0 {
		// 0 в окружении означает «не ждать», у диспетчера это -1
		settle = -1
	}
	return pages.Deps{
		Actions: browser.NewActions(drv, log, cfg.ActionTimeout),
		Popups: browser.NewDispatcher(drv, log, browser.DispatcherOptions{
			ProbeTimeout: cfg.ProbeTimeout,
			SettleTime:   settle,
		}),
		Log: log,
	}
}

type Runner struct {
	cfg  *config.Cfg
	log  *zap.Logger
	rec  *report.Recorder
	open Opener
}

func New(cfg *config.Cfg, log *zap.Logger, rec *report.Recorder, open Opener) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:  cfg,
		log:  log.Named("runner"),
		rec:  rec,
		open: open,
	}
}

// Run выполняет сценарии по очереди. Падение одного не останавливает остальные.
func (r *Runner) Run(ctx context.Context, flows []pages.Flow, order pages.Order) (report.Summary, error) {
	if err := r.rec.Start(ctx); err != nil {
		return report.Summary{}, err
	}

	// Итоги пишутся в хранилище и после отмены прогона
	rctx := context.WithoutCancel(ctx)
	for _, flow := range flows {
		if ctx.Err() != nil {
			r.rec.Case(flow.Name).Skip(rctx, "прогон прерван")
			continue
		}
		r.runOne(ctx, flow, order)
	}

	return r.rec.Finish(rctx)
}

func (r *Runner) runOne(ctx context.Context, flow pages.Flow, order pages.Order) {
	c := r.rec.Case(flow.Name)
	rctx := context.WithoutCancel(ctx)
	started := time.Now()

	sess, err := r.open(ctx)
	if err != nil {
		c.Fail(rctx, nil, fmt.Errorf("открытие вкладки: %w", err))
		return
	}
	defer func() {
		if err := sess.Close(); err != nil {
			r.log.Warn("Ошибка закрытия вкладки", zap.String("flow", flow.Name), zap.Error(err))
		}
	}()

	deps := NewDeps(sess, r.cfg.Browser, r.log.With(zap.String("flow", flow.Name)))
	if err := flow.Run(ctx, deps, r.cfg.App.BaseURL, order); err != nil {
		c.Fail(rctx, sess, err)
		return
	}
	c.Pass(rctx)
	r.log.Debug("Сценарий пройден", zap.String("flow", flow.Name), zap.Duration("took", time.Since(started)))
}
