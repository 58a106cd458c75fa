package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Cfg struct {
	App        App
	Database   Database
	Logger     Logger
	Browser    Browser
	Migrations Migrations
}

type App struct {
	BaseURL       string
	TestDataPath  string
	ScreenshotDir string
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, настроена ли запись результатов прогона в БД.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// DSN возвращает строку подключения для gorm.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// URL возвращает строку подключения для golang-migrate.
func (d Database) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
	File  string
}

type Browser struct {
	Name            string
	Display         string
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	ActionTimeout   time.Duration
	ProbeTimeout    time.Duration
	SettleTime      time.Duration
	NavigateTimeout time.Duration
}

var supportedBrowsers = map[string]bool{
	"chromium": true,
	"chrome":   true,
	"firefox":  true,
	"webkit":   true,
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		App: App{
			BaseURL:       env("BASE_URL", "https://www.saucedemo.com/"),
			TestDataPath:  os.Getenv("TEST_DATA_PATH"),
			ScreenshotDir: env("SCREENSHOT_DIR", "./screenshots"),
		},
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Browser: Browser{
			Name:            strings.ToLower(env("BROWSER", "chromium")),
			Display:         os.Getenv("DISPLAY"),
			Headless:        envBool("PW_HEADLESS"),
			UserDataDir:     os.Getenv("PW_USER_DATA_DIR"),
			BrowsersPath:    env("PLAYWRIGHT_BROWSERS_PATH", ""),
			ActionTimeout:   envDuration("ACTION_TIMEOUT", 10*time.Second),
			ProbeTimeout:    envDuration("PROBE_TIMEOUT", 2*time.Second),
			SettleTime:      envDuration("SETTLE_TIME", 500*time.Millisecond),
			NavigateTimeout: envDuration("NAVIGATE_TIMEOUT", 30*time.Second),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	// Проба не должна ждать дольше основного действия
	if cfg.Browser.ProbeTimeout >= cfg.Browser.ActionTimeout {
		cfg.Browser.ProbeTimeout = cfg.Browser.ActionTimeout / 5
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) Validate() error {
	if c.App.BaseURL == "" {
		return fmt.Errorf("BASE_URL не может быть пустым")
	}
	if !supportedBrowsers[c.Browser.Name] {
		return fmt.Errorf("браузер не поддерживается: %s", c.Browser.Name)
	}
	if c.Browser.ActionTimeout <= 0 || c.Browser.ProbeTimeout <= 0 || c.Browser.NavigateTimeout <= 0 {
		return fmt.Errorf("таймауты должны быть положительными")
	}
	if c.Browser.SettleTime < 0 {
		return fmt.Errorf("SETTLE_TIME не может быть отрицательным")
	}
	return nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// envDuration принимает как "5s", так и число секунд ("5").
func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := envInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}
