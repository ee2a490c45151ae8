package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadingSessionValidation(t *testing.T) {
	date := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bookID   int64
		duration int
		pages    int
		start    int
		end      int
		wantErr  bool
	}{
		{"valid", 1, 45, 30, 10, 40, false},
		{"zero duration", 1, 0, 0, 0, 0, false},
		{"zero book id", 0, 45, 30, 10, 40, true},
		{"negative book id", -1, 45, 30, 10, 40, true},
		{"negative duration", 1, -5, 30, 10, 40, true},
		{"negative pages", 1, 45, -1, 10, 40, true},
		{"negative start page", 1, 45, 30, -1, 40, true},
		{"end before start", 1, 45, 30, 40, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewReadingSession(tt.bookID, date, tt.duration, tt.pages, tt.start, tt.end, "")
			if tt.wantErr {
				var verr *ValidationError
				require.Error(t, err)
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bookID, s.BookID())
			assert.True(t, date.Equal(s.SessionDate()))
		})
	}
}

func TestSetPageRangeIsAtomic(t *testing.T) {
	s, err := NewReadingSession(1, time.Now(), 30, 20, 10, 30, "")
	require.NoError(t, err)

	require.Error(t, s.SetPageRange(50, 40))
	assert.Equal(t, 10, s.StartPage())
	assert.Equal(t, 30, s.EndPage())

	require.NoError(t, s.SetPageRange(30, 60))
	assert.Equal(t, 30, s.StartPage())
	assert.Equal(t, 60, s.EndPage())
}

func TestReadingSpeed(t *testing.T) {
	s, err := NewReadingSession(1, time.Now(), 30, 20, 0, 20, "")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, s.PagesPerHour(), 0.001)
	assert.InDelta(t, 20.0/30.0, s.PagesPerMinute(), 0.001)

	idle, err := NewReadingSession(1, time.Now(), 0, 20, 0, 20, "")
	require.NoError(t, err)
	assert.Zero(t, idle.PagesPerHour())
	assert.Zero(t, idle.PagesPerMinute())
}

func TestFormattedDuration(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{135, "2h 15m"},
		{180, "3h"},
	}

	for _, tt := range tests {
		s, err := NewReadingSession(1, time.Now(), tt.minutes, 0, 0, 0, "")
		require.NoError(t, err)
		assert.Equal(t, tt.expected, s.FormattedDuration())
	}
}

func TestSessionRecordRoundTrip(t *testing.T) {
	s, err := NewReadingSession(7, time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC), 90, 60, 100, 160, "evening read")
	require.NoError(t, err)
	require.NoError(t, s.SetID(3))

	restored, err := RestoreReadingSession(s.Record())
	require.NoError(t, err)
	assert.Equal(t, s.Record(), restored.Record())
}

func TestRestoreReadingSessionRejectsInvalidRecords(t *testing.T) {
	rec := SessionRecord{ID: 1, BookID: 0, SessionDate: time.Now()}
	_, err := RestoreReadingSession(rec)
	assert.Error(t, err)
}
