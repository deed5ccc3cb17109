package vnfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2024", FormatDate(date))
}

func TestFormatMonth(t *testing.T) {
	tests := []struct {
		name    string
		month   string
		want    string
		wantErr bool
	}{
		{name: "leading zero stripped", month: "2024-03", want: "Tháng 3/2024"},
		{name: "double digit month", month: "2024-11", want: "Tháng 11/2024"},
		{name: "no separator", month: "202403", wantErr: true},
		{name: "two separators", month: "2024-03-05", wantErr: true},
		{name: "empty month part", month: "2024-", wantErr: true},
		{name: "non numeric month", month: "2024-xx", wantErr: true},
		{name: "month out of range", month: "2024-13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatMonth(tt.month)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrBadMonthKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthKey(t *testing.T) {
	date := time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05", MonthKey(date))
}
