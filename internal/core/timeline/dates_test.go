package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2020-06-15",
			want:  time.Date(2020, time.June, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "single digit components",
			input: "2020-1-2",
			want:  time.Date(2020, time.January, 2, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "missing components",
			input:   "2020-06",
			wantErr: true,
		},
		{
			name:    "not a date",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "2020-13-01",
			wantErr: true,
		},
		{
			name:    "day out of range",
			input:   "2020-06-32",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocalDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.Local, got.Location())
		})
	}
}

func TestParseLocalDateMidnightLocal(t *testing.T) {
	got, err := ParseLocalDate("2022-07-01")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestFormatISODateRoundTrip(t *testing.T) {
	parsed, err := ParseLocalDate("2019-03-07")
	require.NoError(t, err)
	assert.Equal(t, "2019-03-07", FormatISODate(parsed))
}

func TestFormatEntryDate(t *testing.T) {
	d := time.Date(2021, time.March, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Mar 5, 2021", FormatEntryDate(d))
}

func TestFormatDateRange(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{
			name:  "same month",
			start: date(2020, time.January, 1),
			end:   date(2020, time.January, 28),
			want:  "Jan 2020",
		},
		{
			name:  "same year different months",
			start: date(2020, time.January, 1),
			end:   date(2020, time.June, 30),
			want:  "Jan - Jun 2020",
		},
		{
			name:  "different years",
			start: date(2019, time.January, 1),
			end:   date(2020, time.June, 30),
			want:  "Jan 2019 - Jun 2020",
		},
		{
			name:  "same month different years",
			start: date(2019, time.January, 1),
			end:   date(2020, time.January, 1),
			want:  "Jan 2019 - Jan 2020",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateRange(tt.start, tt.end))
		})
	}
}
