package mocks

import (
	"context"

	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/stretchr/testify/mock"
)

// CategoryRepository is a mock for category.Repository.
type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]category.Category); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) Get(ctx context.Context, id string) (*category.Category, error) {
	args := m.Called(ctx, id)
	if cat, ok := args.Get(0).(*category.Category); ok {
		return cat, args.Error(1)
	}
	return nil, args.Error(1)
}

// Persister is a mock for timelog.Persister.
type Persister struct {
	mock.Mock
}

func (m *Persister) Load(ctx context.Context) ([]timelog.TimeLog, error) {
	args := m.Called(ctx)
	if logs, ok := args.Get(0).([]timelog.TimeLog); ok {
		return logs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Persister) Save(ctx context.Context, logs []timelog.TimeLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Model is a mock for report.Model.
type Model struct {
	mock.Mock
}

func (m *Model) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}
