package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvh/tutor-admin/internal/models"
)

func TestStorage_CreateStudent(t *testing.T) {
	type args struct {
		ctx     context.Context
		student models.Student
	}

	tests := []struct {
		name   string
		args   args
		wantID int64
		verify func(t *testing.T, s *Storage, id int64)
	}{
		{
			name: "successful create student",
			args: args{
				ctx: context.Background(),
				student: models.Student{
					Name:         "Nguyễn Văn An",
					Phone:        "0901234567",
					Email:        "parent.an@example.com",
					Schedule:     "Thứ 2, Thứ 4 - 18:00",
					PricePerHour: 200000,
					Notes:        "lớp 8",
				},
			},
			wantID: 1,
			verify: func(t *testing.T, s *Storage, id int64) {
				var count int
				err := s.DB.QueryRow("SELECT COUNT(*) FROM students WHERE id = $1", id).Scan(&count)
				require.NoError(t, err)
				assert.Equal(t, 1, count)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			gotID, err := storage.CreateStudent(tt.args.ctx, tt.args.student)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, gotID)
			tt.verify(t, storage, gotID)
		})
	}
}

func TestStorage_ReadStudent(t *testing.T) {
	type args struct {
		ctx context.Context
		id  int64
	}

	tests := []struct {
		name    string
		args    args
		want    *models.Student
		wantErr bool
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful read existing student",
			args: args{
				ctx: context.Background(),
				id:  1,
			},
			want: &models.Student{
				Name:         "Trần Thị Bình",
				Phone:        "0907654321",
				Email:        "parent.binh@example.com",
				PricePerHour: 250000,
			},
			wantErr: false,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateStudent(t, "Trần Thị Bình", "0907654321", "parent.binh@example.com", 250000)
			},
		},
		{
			name: "read non-existing student",
			args: args{
				ctx: context.Background(),
				id:  999,
			},
			want:    nil,
			wantErr: true,
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.ReadStudent(tt.args.ctx, tt.args.id)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.Phone, got.Phone)
			assert.Equal(t, tt.want.Email, got.Email)
			assert.Equal(t, tt.want.PricePerHour, got.PricePerHour)
		})
	}
}

func TestStorage_RemoveStudent(t *testing.T) {
	type args struct {
		ctx context.Context
		id  int64
	}

	tests := []struct {
		name             string
		args             args
		wantRowsAffected int
		setup            func(t *testing.T, factory *TestDataFactory)
		verify           func(t *testing.T, s *Storage)
	}{
		{
			name: "successful delete student with cascade",
			args: args{
				ctx: context.Background(),
				id:  1,
			},
			wantRowsAffected: 1,
			setup: func(t *testing.T, factory *TestDataFactory) {
				studentID := factory.CreateStudent(t, "Lê Văn Cường", "", "", 180000)
				factory.CreateSessionRecord(t, studentID,
					time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 180000, false)
			},
			verify: func(t *testing.T, s *Storage) {
				var count int
				err := s.DB.QueryRow("SELECT COUNT(*) FROM session_records").Scan(&count)
				require.NoError(t, err)
				assert.Equal(t, 0, count, "session records should be removed with the student")
			},
		},
		{
			name: "invalid id",
			args: args{
				ctx: context.Background(),
				id:  9999,
			},
			wantRowsAffected: 0,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateStudent(t, "Lê Văn Cường", "", "", 180000)
			},
			verify: func(_ *testing.T, _ *Storage) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			gotRowsAffected, err := storage.RemoveStudent(tt.args.ctx, tt.args.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRowsAffected, gotRowsAffected)
			tt.verify(t, storage)
		})
	}
}

func TestStorage_TogglePayment(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		wantPaid bool
		wantErr  bool
		setup    func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:     "toggle unpaid to paid",
			id:       1,
			wantPaid: true,
			wantErr:  false,
			setup: func(t *testing.T, factory *TestDataFactory) {
				studentID := factory.CreateStudent(t, "Phạm Thị Dung", "", "", 200000)
				factory.CreateSessionRecord(t, studentID,
					time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, false)
			},
		},
		{
			name:     "toggle paid back to unpaid",
			id:       1,
			wantPaid: false,
			wantErr:  false,
			setup: func(t *testing.T, factory *TestDataFactory) {
				studentID := factory.CreateStudent(t, "Phạm Thị Dung", "", "", 200000)
				factory.CreateSessionRecord(t, studentID,
					time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, true)
			},
		},
		{
			name:    "toggle non-existing record",
			id:      777,
			wantErr: true,
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.TogglePayment(context.Background(), tt.id)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPaid, got.Paid)
			assert.Equal(t, "Phạm Thị Dung", got.StudentName)
		})
	}
}

func TestStorage_ListSessionsByMonth(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		wantCount int
		setup     func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:      "sessions only from requested month, date ascending",
			month:     "2024-05",
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) {
				studentID := factory.CreateStudent(t, "Hoàng Văn Em", "", "", 200000)
				factory.CreateSessionRecord(t, studentID,
					time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, false)
				factory.CreateSessionRecord(t, studentID,
					time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, true)
				factory.CreateSessionRecord(t, studentID,
					time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), "2024-06", 1, 2, 200000, false)
			},
		},
		{
			name:      "empty month",
			month:     "2023-01",
			wantCount: 0,
			setup:     func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.ListSessionsByMonth(context.Background(), tt.month)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)

			for i := 1; i < len(got); i++ {
				assert.False(t, got[i].SessionDate.Before(got[i-1].SessionDate),
					"sessions should be ordered by date ascending")
			}
		})
	}
}

func TestStorage_Sums(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	studentID := factory.CreateStudent(t, "Vũ Thị Giang", "", "", 200000)

	// 2 часа оплачено в мае, 3 часа не оплачено в мае, 2 часа не оплачено в июне
	factory.CreateSessionRecord(t, studentID,
		time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, true)
	factory.CreateSessionRecord(t, studentID,
		time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), "2024-05", 2, 3, 200000, false)
	factory.CreateSessionRecord(t, studentID,
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), "2024-06", 1, 2, 200000, false)

	ctx := context.Background()

	paid, err := storage.SumPaid(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(400000), paid)

	unpaid, err := storage.SumUnpaid(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), unpaid)

	paidMay, err := storage.SumPaidByMonth(ctx, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, int64(400000), paidMay)

	unpaidMay, err := storage.SumUnpaidByMonth(ctx, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, int64(600000), unpaidMay)

	sessionsMay, err := storage.SumSessionsByMonth(ctx, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, 3, sessionsMay)

	paidByStudent, err := storage.SumPaidByStudent(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, int64(400000), paidByStudent)

	unpaidByStudent, err := storage.SumUnpaidByStudent(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), unpaidByStudent)
}

func TestStorage_DistinctMonths(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	studentID := factory.CreateStudent(t, "Đặng Văn Hải", "", "", 150000)

	factory.CreateSessionRecord(t, studentID,
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "2024-03", 1, 2, 150000, true)
	factory.CreateSessionRecord(t, studentID,
		time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 150000, false)
	factory.CreateSessionRecord(t, studentID,
		time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 150000, false)

	got, err := storage.DistinctMonths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05", "2024-03"}, got)
}

func TestStorage_FindUnpaidForMonth(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	// У первого ученика есть почта и долг, у второго долга нет,
	// у третьего есть долг, но нет почты для напоминания
	withEmail := factory.CreateStudent(t, "Ngô Thị Lan", "", "parent.lan@example.com", 200000)
	paidUp := factory.CreateStudent(t, "Bùi Văn Minh", "", "parent.minh@example.com", 200000)
	noEmail := factory.CreateStudent(t, "Đỗ Thị Nga", "", "", 200000)

	factory.CreateSessionRecord(t, withEmail,
		time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, false)
	factory.CreateSessionRecord(t, withEmail,
		time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, false)
	factory.CreateSessionRecord(t, paidUp,
		time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, true)
	factory.CreateSessionRecord(t, noEmail,
		time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), "2024-05", 1, 2, 200000, false)

	got, err := storage.FindUnpaidForMonth(context.Background(), "2024-05")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Ngô Thị Lan", got[0].StudentName)
	assert.Equal(t, "parent.lan@example.com", got[0].ParentEmail)
	assert.Equal(t, "2024-05", got[0].Month)
	assert.Equal(t, 2, got[0].UnpaidSessions)
	assert.Equal(t, int64(800000), got[0].UnpaidAmount)
}

func TestStorage_RegisterUser(t *testing.T) {
	type args struct {
		ctx  context.Context
		user models.User
	}

	tests := []struct {
		name    string
		args    args
		wantErr bool
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful register user",
			args: args{
				ctx: context.Background(),
				user: models.User{
					Email:        "test@example.com",
					Username:     "testuser",
					PasswordHash: "hashedpassword",
					Role:         "user",
				},
			},
			wantErr: false,
		},
		{
			name: "register user with duplicate username",
			args: args{
				ctx: context.Background(),
				user: models.User{
					Email:        "test2@example.com",
					Username:     "testuser",
					PasswordHash: "hashedpassword2",
					Role:         "user",
				},
			},
			wantErr: true,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "test@example.com", "hashedpassword", "user")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			if tt.setup != nil {
				tt.setup(t, factory)
			}

			gotUID, err := storage.RegisterUser(tt.args.ctx, tt.args.user)

			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, gotUID)
				return
			}

			require.NoError(t, err)
			_, parseErr := uuid.Parse(gotUID)
			assert.NoError(t, parseErr, "returned uid should be a valid UUID")
		})
	}
}

func TestStorage_GetUserByUsername(t *testing.T) {
	type args struct {
		ctx      context.Context
		username string
	}

	tests := []struct {
		name    string
		args    args
		want    *models.User
		wantErr bool
		setup   func(t *testing.T, factory *TestDataFactory) string
	}{
		{
			name: "successful get user by username",
			args: args{
				ctx:      context.Background(),
				username: "testuser",
			},
			want: &models.User{
				Email:        "test@example.com",
				Username:     "testuser",
				PasswordHash: "hashedpassword",
				Role:         "user",
			},
			wantErr: false,
			setup: func(t *testing.T, factory *TestDataFactory) string {
				return factory.CreateUser(t, "testuser", "test@example.com", "hashedpassword", "user")
			},
		},
		{
			name: "get non-existing user",
			args: args{
				ctx:      context.Background(),
				username: "nonexistent",
			},
			want:    nil,
			wantErr: true,
			setup:   func(_ *testing.T, _ *TestDataFactory) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			wantUID := tt.setup(t, factory)

			got, err := storage.GetUserByUsername(tt.args.ctx, tt.args.username)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			assert.Equal(t, wantUID, got.UUID)
			assert.Equal(t, tt.want.Email, got.Email)
			assert.Equal(t, tt.want.Username, got.Username)
			assert.Equal(t, tt.want.PasswordHash, got.PasswordHash)
			assert.Equal(t, tt.want.Role, got.Role)
		})
	}
}
