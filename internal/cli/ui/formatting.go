package ui

import (
	"fmt"
	"time"
)

// FormatStatus возвращает иконку, цвет и текст для статуса прогона или теста
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case "passed":
		return IconCheckmark, ColorGreen, "пройден"
	case "failed":
		return IconCross, ColorRed, "упал"
	case "skipped":
		return IconSkip, ColorGray, "пропущен"
	case "running":
		return IconPlay, ColorCyan, "выполняется"
	default:
		return IconClock, ColorYellow, status
	}
}

// Status: статус одной строкой с цветом.
func Status(status string) string {
	icon, color, text := FormatStatus(status)
	return color + icon + " " + text + ColorReset
}

func FormatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

// FormatTime печатает время или прочерк для nil.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02 15:04:05")
}

func Bold(format string, args ...any) string {
	return ColorBold + fmt.Sprintf(format, args...) + ColorReset
}
