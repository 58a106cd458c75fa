// Package commands печатает историю прогонов из хранилища результатов.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"sauceDemo/internal/cli/ui"
	"sauceDemo/internal/database"
	"sauceDemo/internal/report"
)

// RunReader: чтение прогонов. Реализован database.RunRepository.
type RunReader interface {
	ListRuns(ctx context.Context, limit, offset int) ([]database.TestRun, error)
	GetRun(ctx context.Context, runID string) (*database.TestRun, error)
	ListCases(ctx context.Context, runID string) ([]database.TestCase, error)
}

// RunsHandler обрабатывает команды просмотра прогонов
type RunsHandler struct {
	repo RunReader
	log  *zap.Logger
	out  io.Writer
}

func NewRunsHandler(repo RunReader, log *zap.Logger, out io.Writer) *RunsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RunsHandler{
		repo: repo,
		log:  log,
		out:  out,
	}
}

// List выводит последние прогоны, новые сверху
func (h *RunsHandler) List(ctx context.Context, limit int) error {
	runs, err := h.repo.ListRuns(ctx, limit, 0)
	if err != nil {
		h.log.Error("Ошибка получения прогонов", zap.Error(err))
		return fmt.Errorf("получение прогонов: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Прогонов пока нет"+ui.ColorReset)
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(h.out, "%s  %-8s  %s  %s\n",
			run.RunID, run.Browser, run.StartedAt.Format("2006-01-02 15:04:05"), ui.Status(run.Status))
	}
	return nil
}

// Show выводит прогон со всеми тестами
func (h *RunsHandler) Show(ctx context.Context, runID string) error {
	run, err := h.repo.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("прогон %s не найден: %w", runID, err)
	}

	fmt.Fprintf(h.out, "\n%s\n", ui.Bold("=== Прогон %s ===", run.RunID))
	fmt.Fprintf(h.out, ui.ColorCyan+"Браузер:"+ui.ColorReset+" %s\n", run.Browser)
	fmt.Fprintf(h.out, ui.ColorCyan+"Адрес:"+ui.ColorReset+" %s\n", run.BaseURL)
	fmt.Fprintf(h.out, ui.ColorCyan+"Статус:"+ui.ColorReset+" %s\n", ui.Status(run.Status))
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Начат:"+ui.ColorReset+" %s, завершён: %s\n",
		ui.FormatTime(&run.StartedAt), ui.FormatTime(run.FinishedAt))

	cases, err := h.repo.ListCases(ctx, run.RunID)
	if err != nil {
		h.log.Error("Ошибка получения тестов", zap.Error(err))
		return fmt.Errorf("получение тестов: %w", err)
	}

	if len(cases) == 0 {
		fmt.Fprintln(h.out, "\n"+ui.ColorGray+"Тесты не найдены"+ui.ColorReset)
		return nil
	}

	fmt.Fprintf(h.out, "\n"+ui.ColorYellow+"Тесты (%d):"+ui.ColorReset+"\n", len(cases))
	for _, c := range cases {
		fmt.Fprintf(h.out, "  %s %s "+ui.ColorGray+"(%s)"+ui.ColorReset+"\n",
			ui.Status(c.Status), c.Name, ui.FormatDuration(c.DurationMs))
		if c.Error != "" {
			fmt.Fprintf(h.out, "    "+ui.ColorRed+"%s"+ui.ColorReset+"\n", strings.TrimSpace(c.Error))
		}
		if c.ScreenshotPath != "" {
			fmt.Fprintf(h.out, "    "+ui.IconCamera+" %s\n", c.ScreenshotPath)
		}
	}
	return nil
}

// PrintSummary печатает итог прогона одной строкой
func PrintSummary(w io.Writer, s report.Summary) {
	fmt.Fprintf(w, "%s %s: "+ui.ColorGreen+"пройдено %d"+ui.ColorReset+", "+
		ui.ColorRed+"упало %d"+ui.ColorReset+", "+
		ui.ColorGray+"пропущено %d"+ui.ColorReset+"\n",
		ui.Status(s.Status()), s.RunID, s.Passed, s.Failed, s.Skipped)
}
