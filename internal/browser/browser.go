package browser

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Engine владеет процессом playwright и запущенным браузером. Тесты получают
// от него изолированные сессии через NewSession.
type Engine struct {
	cfg Config
	log *zap.Logger

	mu         sync.Mutex
	pw         *playwright.Playwright
	browser    playwright.Browser
	persistent playwright.BrowserContext
}

func New(cfg Config, log *zap.Logger) *Engine {
	// Установка дефолтных таймаутов
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 30 * time.Second
	}
	if cfg.Name == "" {
		cfg.Name = "chromium"
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		cfg: cfg,
		log: log.Named("browser"),
	}
}

func (e *Engine) getBrowserArgs() []string {
	args := []string{"--no-sandbox"}
	if e.isChromium(e.cfg.Name) {
		args = append(args,
			"--disable-dev-shm-usage",
			"--disable-gpu",
			"--disable-extensions",
			"--disable-blink-features=AutomationControlled",
		)
	}
	return args
}

func (e *Engine) getEnvMap() map[string]string {
	if e.cfg.Display != "" {
		return map[string]string{
			"DISPLAY": e.cfg.Display,
		}
	}
	return nil
}

func (e *Engine) isChromium(name string) bool {
	return name == "chromium" || name == "chrome"
}

func (e *Engine) browserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "chromium", "chrome":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("браузер не поддерживается: %s", name)
	}
}

func (e *Engine) Launch(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pw != nil {
		return nil
	}

	// Драйвер playwright ищет браузеры по переменной окружения
	if e.cfg.BrowsersPath != "" {
		if err := os.Setenv("PLAYWRIGHT_BROWSERS_PATH", e.cfg.BrowsersPath); err != nil {
			return fmt.Errorf("PLAYWRIGHT_BROWSERS_PATH: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("запуск playwright: %w", err)
	}

	if e.cfg.UserDataDir != "" {
		err = e.launchPersistent(pw, e.cfg.Name)
	} else {
		err = e.launchStandard(pw, e.cfg.Name)
	}

	// Chromium может не стартовать в урезанных окружениях, пробуем Firefox
	if err != nil && e.isChromium(e.cfg.Name) {
		e.log.Warn("Не удалось запустить Chromium, пробуем Firefox", zap.Error(err))
		if e.cfg.UserDataDir != "" {
			err = e.launchPersistent(pw, "firefox")
		} else {
			err = e.launchStandard(pw, "firefox")
		}
	}

	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("запуск браузера %s: %w", e.cfg.Name, err)
	}

	e.pw = pw
	e.log.Info("Браузер запущен",
		zap.String("browser", e.cfg.Name),
		zap.Bool("headless", e.cfg.Headless),
		zap.Bool("persistent", e.persistent != nil))
	return nil
}

func (e *Engine) launchStandard(pw *playwright.Playwright, name string) error {
	bt, err := e.browserType(pw, name)
	if err != nil {
		return err
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(e.cfg.Headless),
		Args:     e.getBrowserArgs(),
	}
	if env := e.getEnvMap(); env != nil {
		opts.Env = env
	}

	browser, err := bt.Launch(opts)
	if err != nil {
		return err
	}

	e.browser = browser
	return nil
}

func (e *Engine) launchPersistent(pw *playwright.Playwright, name string) error {
	bt, err := e.browserType(pw, name)
	if err != nil {
		return err
	}

	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(e.cfg.Headless),
		Args:     e.getBrowserArgs(),
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	}
	if env := e.getEnvMap(); env != nil {
		opts.Env = env
	}

	browserContext, err := bt.LaunchPersistentContext(e.cfg.UserDataDir, opts)
	if err != nil {
		return err
	}

	e.persistent = browserContext
	return nil
}

// NewSession открывает новую вкладку в собственном BrowserContext: куки и
// хранилище не пересекаются с другими тестами. В persistent-режиме контекст
// общий, изолированы только вкладки.
func (e *Engine) NewSession(ctx context.Context) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pw == nil {
		return nil, ErrNotLaunched
	}

	var (
		bctx  playwright.BrowserContext
		owned bool
		err   error
	)
	if e.persistent != nil {
		bctx = e.persistent
	} else {
		bctx, err = e.browser.NewContext(playwright.BrowserNewContextOptions{
			Viewport: &playwright.Size{Width: 1920, Height: 1080},
		})
		if err != nil {
			return nil, fmt.Errorf("создание контекста браузера: %w", err)
		}
		owned = true
	}

	page, err := bctx.NewPage()
	if err != nil {
		if owned {
			_ = bctx.Close()
		}
		return nil, fmt.Errorf("создание вкладки: %w", err)
	}

	return newSession(page, bctx, owned, e.cfg, e.log), nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.persistent != nil {
		if err := e.persistent.Close(); err != nil {
			return err
		}
		e.persistent = nil
	}
	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			return err
		}
		e.browser = nil
	}
	if e.pw != nil {
		err := e.pw.Stop()
		e.pw = nil
		return err
	}
	return nil
}

var (
	_ Driver      = (*Session)(nil)
	_ Snapshotter = (*Session)(nil)
)

// Session: вкладка одного теста, реализует Driver.
type Session struct {
	page    playwright.Page
	context playwright.BrowserContext
	owned   bool
	cfg     Config
	log     *zap.Logger
	dialogs chan playwright.Dialog
}

func newSession(page playwright.Page, bctx playwright.BrowserContext, owned bool, cfg Config, log *zap.Logger) *Session {
	s := &Session{
		page:    page,
		context: bctx,
		owned:   owned,
		cfg:     cfg,
		log:     log,
		dialogs: make(chan playwright.Dialog, 4),
	}

	page.SetDefaultTimeout(float64(cfg.Timeout.Milliseconds()))

	// Без обработчика playwright сам отклоняет диалоги, а нам нужно их принять
	page.OnDialog(func(d playwright.Dialog) {
		select {
		case s.dialogs <- d:
		default:
			s.log.Warn("Очередь диалогов переполнена, диалог отклонён", zap.String("message", d.Message()))
			_ = d.Dismiss()
		}
	})

	return s
}

func (s *Session) Element(loc Locator) Element {
	return &pwElement{
		loc:     loc,
		locator: s.page.Locator(loc.EngineSelector()).First(),
	}
}

func (s *Session) Elements(ctx context.Context, loc Locator) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := s.page.Locator(loc.EngineSelector()).All()
	if err != nil {
		return nil, err
	}

	elements := make([]Element, len(all))
	for i, l := range all {
		elements[i] = &pwElement{loc: loc, locator: l, index: i}
	}
	return elements, nil
}

func (s *Session) URL() string {
	return s.page.URL()
}

func (s *Session) Title(ctx context.Context) (string, error) {
	return s.page.Title()
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigateTimeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		_, err := s.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   playwright.Float(float64(s.cfg.NavigateTimeout.Milliseconds())),
		})
		errChan <- err
	}()

	select {
	case <-navCtx.Done():
		return fmt.Errorf("navigate timeout after %v: %w", s.cfg.NavigateTimeout, navCtx.Err())
	case err := <-errChan:
		return err
	}
}

func (s *Session) AcceptDialog(ctx context.Context, wait time.Duration) (Dialog, bool, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case d := <-s.dialogs:
		dialog := Dialog{Type: d.Type(), Message: d.Message()}
		if err := d.Accept(); err != nil {
			return dialog, false, fmt.Errorf("принятие диалога: %w", err)
		}
		return dialog, true, nil
	case <-timer.C:
		return Dialog{}, false, nil
	case <-ctx.Done():
		return Dialog{}, false, ctx.Err()
	}
}

func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	return s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

// Close закрывает вкладку и собственный контекст сессии.
func (s *Session) Close() error {
	if err := s.page.Close(); err != nil {
		return err
	}
	if s.owned {
		return s.context.Close()
	}
	return nil
}
