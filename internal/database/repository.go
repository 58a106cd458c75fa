package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) CreateRun(ctx context.Context, run *TestRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunRepository) FinishRun(ctx context.Context, runID, status string, finishedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&TestRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]any{
			"status":      status,
			"finished_at": finishedAt,
		}).Error
}

func (r *RunRepository) AddCase(ctx context.Context, c *TestCase) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *RunRepository) GetRun(ctx context.Context, runID string) (*TestRun, error) {
	var run TestRun
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RunRepository) ListRuns(ctx context.Context, limit, offset int) ([]TestRun, error) {
	var runs []TestRun
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunRepository) ListCases(ctx context.Context, runID string) ([]TestCase, error) {
	var cases []TestCase
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}
