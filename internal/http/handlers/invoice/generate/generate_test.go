package generate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tranvh/tutor-admin/internal/lib/vnfmt"
	"github.com/tranvh/tutor-admin/internal/models"
	invoicesvc "github.com/tranvh/tutor-admin/internal/services/invoice"
)

// MockService реализует интерфейс generate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GenerateInvoice(ctx context.Context, req models.DummyInvoiceRequest) (*models.InvoiceResponse, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.InvoiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGenerateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	invoice := &models.InvoiceResponse{
		InvoiceNumber: "INV-2024-05-004",
		StudentName:   "Nguyễn Văn An",
		Month:         "Tháng 5/2024",
		TotalSessions: 4,
		TotalHours:    4,
		TotalAmount:   800000,
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное формирование счёта",
			body: `{"student_id":7,"month":"2024-05"}`,
			setupMock: func(m *MockService) {
				m.On("GenerateInvoice", mock.Anything, mock.MatchedBy(func(req models.DummyInvoiceRequest) bool {
					return req.StudentID == 7 && req.Month == "2024-05"
				})).Return(invoice, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"invoiceNumber":"INV-2024-05-004"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "нет месяца в запросе",
			body:           `{"student_id":7}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Month is a required field`,
		},
		{
			name: "ученик не найден",
			body: `{"student_id":99,"month":"2024-05"}`,
			setupMock: func(m *MockService) {
				m.On("GenerateInvoice", mock.Anything, mock.Anything).
					Return(nil, invoicesvc.ErrStudentNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"student not found"`,
		},
		{
			name: "нет записей занятий",
			body: `{"student_id":7,"month":"2024-07"}`,
			setupMock: func(m *MockService) {
				m.On("GenerateInvoice", mock.Anything, mock.Anything).
					Return(nil, invoicesvc.ErrNoSessions)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"no sessions found for invoice"`,
		},
		{
			name: "некорректный ключ месяца",
			body: `{"student_id":7,"month":"May 2024"}`,
			setupMock: func(m *MockService) {
				m.On("GenerateInvoice", mock.Anything, mock.Anything).
					Return(nil, vnfmt.ErrBadMonthKey)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"month must look like YYYY-MM"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"student_id":7,"month":"2024-05"}`,
			setupMock: func(m *MockService) {
				m.On("GenerateInvoice", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not generate invoice"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/invoices/generate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
