package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tranvh/tutor-admin/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateStudent(ctx context.Context, student models.Student) (int64, error) {
	args := m.Called(ctx, student)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ReadStudent(ctx context.Context, id int64) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}
func (m *RepoMock) UpdateStudent(ctx context.Context, student models.Student, id int64) (int, error) {
	args := m.Called(ctx, student, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveStudent(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListStudents(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}
func (m *RepoMock) SumPaidByStudent(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) SumUnpaidByStudent(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestStudentService_Create(t *testing.T) {
	req := models.DummyStudent{
		Name:         "Nguyễn Văn An",
		Phone:        "0901234567",
		Email:        "phuhuynh.an@gmail.com",
		Schedule:     "Thứ 2, Thứ 4 - 18:00",
		PricePerHour: 200000,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int64
		wantErr    bool
	}{
		{
			name: "success create",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateStudent", mock.Anything, mock.MatchedBy(func(s models.Student) bool {
					return s.Name == req.Name && s.PricePerHour == req.PricePerHour
				})).Return(int64(5), nil).Once()
				// в кеш должен попасть ученик уже с присвоенным ID
				c.On("Set", "student:5", mock.MatchedBy(func(s models.Student) bool {
					return s.ID == 5 && s.Name == req.Name
				}), time.Hour).Return(nil).Once()
			},
			wantID: 5,
		},
		{
			name: "repository error",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("CreateStudent", mock.Anything, mock.Anything).
					Return(int64(0), errors.New("db down")).Once()
			},
			wantErr: true,
		},
		{
			name: "cache failure does not fail create",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateStudent", mock.Anything, mock.Anything).Return(int64(6), nil).Once()
				c.On("Set", "student:6", mock.Anything, time.Hour).
					Return(errors.New("redis down")).Once()
			},
			wantID: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := NewStudentService(repo, cache, newNoopLogger())
			id, err := svc.Create(context.Background(), req)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestStudentService_Read(t *testing.T) {
	student := &models.Student{ID: 3, Name: "Trần Thị Bình", PricePerHour: 180000}

	t.Run("cache miss falls back to repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "student:3", mock.Anything).Return(false, nil).Once()
		repo.On("ReadStudent", mock.Anything, int64(3)).Return(student, nil).Once()
		cache.On("Set", "student:3", student, time.Hour).Return(nil).Once()

		svc := NewStudentService(repo, cache, newNoopLogger())
		got, err := svc.Read(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, student, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "student:3", mock.Anything).Return(true, nil).Once()

		svc := NewStudentService(repo, cache, newNoopLogger())
		_, err := svc.Read(context.Background(), 3)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ReadStudent", mock.Anything, mock.Anything)
	})
}

func TestStudentService_Update(t *testing.T) {
	req := models.DummyStudent{
		Name:         "Trần Thị Bình",
		PricePerHour: 220000,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("UpdateStudent", mock.Anything, mock.MatchedBy(func(s models.Student) bool {
		return s.Name == req.Name && s.PricePerHour == req.PricePerHour
	}), int64(3)).Return(1, nil).Once()
	cache.On("Set", "student:3", mock.MatchedBy(func(s models.Student) bool {
		return s.ID == 3 && s.PricePerHour == 220000
	}), time.Hour).Return(nil).Once()

	svc := NewStudentService(repo, cache, newNoopLogger())
	count, err := svc.Update(context.Background(), req, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestStudentService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Invalidate", "student:3").Return(nil).Once()
	repo.On("RemoveStudent", mock.Anything, int64(3)).Return(1, nil).Once()

	svc := NewStudentService(repo, cache, newNoopLogger())
	count, err := svc.Remove(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestStudentService_List(t *testing.T) {
	students := []*models.Student{
		{ID: 1, Name: "An", PricePerHour: 200000},
		{ID: 2, Name: "Bình", PricePerHour: 150000},
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListStudents", mock.Anything).Return(students, nil).Once()
	repo.On("SumPaidByStudent", mock.Anything, int64(1)).Return(int64(400000), nil).Once()
	repo.On("SumUnpaidByStudent", mock.Anything, int64(1)).Return(int64(200000), nil).Once()
	repo.On("SumPaidByStudent", mock.Anything, int64(2)).Return(int64(0), nil).Once()
	repo.On("SumUnpaidByStudent", mock.Anything, int64(2)).Return(int64(300000), nil).Once()

	svc := NewStudentService(repo, cache, newNoopLogger())
	infos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, int64(400000), infos[0].TotalPaid)
	assert.Equal(t, int64(200000), infos[0].TotalUnpaid)
	assert.Equal(t, int64(300000), infos[1].TotalUnpaid)
	repo.AssertExpectations(t)
}
