package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"valid", "2025-10-13", time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), false},
		{"non-padded month and day", "2025-6-1", time.Time{}, true},
		{"non-padded day", "2025-06-1", time.Time{}, true},
		{"empty", "", time.Time{}, true},
		{"garbage", "not-a-date", time.Time{}, true},
		{"wrong separator", "2025/10/13", time.Time{}, true},
		{"impossible day", "2025-02-30", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}
