package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "mid-year month",
			token:     "2024-03",
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december rolls year",
			token:     "2024-12",
			wantStart: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{name: "month zero", token: "2024-00", wantErr: true},
		{name: "month thirteen", token: "2024-13", wantErr: true},
		{name: "missing month", token: "2024", wantErr: true},
		{name: "unpadded month", token: "2024-3", wantErr: true},
		{name: "garbage", token: "not-a-month", wantErr: true},
		{name: "empty", token: "", wantErr: true},
		{name: "extra segment", token: "2024-03-05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePeriod(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
			assert.Equal(t, tt.token, p.Token())
		})
	}
}

func TestPeriodContains(t *testing.T) {
	p, err := ResolvePeriod("2024-05")
	require.NoError(t, err)

	assert.True(t, p.Contains(p.Start), "start is inclusive")
	assert.True(t, p.Contains(time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(p.End), "end is exclusive")
	assert.False(t, p.Contains(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))
}

func TestNormalizeCategoryName(t *testing.T) {
	assert.Equal(t, "Food", NormalizeCategoryName("  food "))
	assert.Equal(t, "Food", NormalizeCategoryName("FOOD"))
	assert.Equal(t, "Eating Out", NormalizeCategoryName("eating   out"))
	assert.Equal(t, "", NormalizeCategoryName("   "))
}
