// Package database хранит результаты прогонов в PostgreSQL через GORM.
package database

import "time"

const (
	StatusRunning = "running"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// TestRun: один запуск набора тестов. RunID это UUID прогона, FinishedAt
// пуст, пока прогон идёт. Статусы: running, passed, failed.
type TestRun struct {
	ID         uint      `gorm:"primaryKey"`
	RunID      string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	Browser    string    `gorm:"type:varchar(32);not null"`
	BaseURL    string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(16);not null;default:'running'"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt *time.Time
}

// TestCase: результат одного теста внутри прогона. Пути к скриншоту и
// снимку страницы заполняются только для упавших тестов.
type TestCase struct {
	ID             uint      `gorm:"primaryKey"`
	RunID          string    `gorm:"type:varchar(36);index;not null"`
	Name           string    `gorm:"type:text;not null"`
	Status         string    `gorm:"type:varchar(16);not null"`
	Error          string    `gorm:"type:text"`
	ScreenshotPath string    `gorm:"type:text"`
	SnapshotPath   string    `gorm:"type:text"`
	DurationMs     int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
