package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/entities"
)

func newTestSession(t *testing.T, bookID int64, date time.Time, minutes, pages int) *entities.ReadingSession {
	t.Helper()
	sess, err := entities.NewReadingSession(bookID, date, minutes, pages, 0, pages, "")
	require.NoError(t, err)
	return sess
}

func TestAddAndGetSessionRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	bookID := addTestBook(t, store, "Dune", "Frank Herbert")

	date := time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)
	sess, err := entities.NewReadingSession(bookID, date, 90, 60, 100, 160, "evening read")
	require.NoError(t, err)

	id, err := store.AddSession(sess)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
	assert.Equal(t, id, sess.ID())

	got, err := store.GetSession(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, bookID, got.BookID())
	assert.Equal(t, date.Unix(), got.SessionDate().Unix())
	assert.Equal(t, 90, got.DurationMinutes())
	assert.Equal(t, 60, got.PagesRead())
	assert.Equal(t, 100, got.StartPage())
	assert.Equal(t, 160, got.EndPage())
	assert.Equal(t, "evening read", got.Notes())
}

func TestAddSessionUnknownBook(t *testing.T) {
	store := setupTestStore(t)

	sess := newTestSession(t, 777, time.Now(), 30, 20)
	_, err := store.AddSession(sess)
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))
	assert.Contains(t, err.Error(), "book 777 does not exist")
}

func TestGetSessionMissing(t *testing.T) {
	store := setupTestStore(t)

	sess, err := store.GetSession(42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestGetSessionsForBookOrderedByDate(t *testing.T) {
	store := setupTestStore(t)
	bookID := addTestBook(t, store, "Dune", "Frank Herbert")
	otherID := addTestBook(t, store, "The Hobbit", "J.R.R. Tolkien")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Inserted out of chronological order.
	_, err := store.AddSession(newTestSession(t, bookID, base.AddDate(0, 0, 2), 30, 20))
	require.NoError(t, err)
	_, err = store.AddSession(newTestSession(t, bookID, base, 45, 30))
	require.NoError(t, err)
	_, err = store.AddSession(newTestSession(t, otherID, base.AddDate(0, 0, 1), 60, 40))
	require.NoError(t, err)

	sessions, err := store.GetSessionsForBook(bookID)
	require.NoError(t, err)
	require.Len(t, sessions, 2, "only the requested book's sessions")
	assert.Equal(t, 45, sessions[0].DurationMinutes())
	assert.Equal(t, 30, sessions[1].DurationMinutes())
}

func TestGetSessionsForUnknownBook(t *testing.T) {
	store := setupTestStore(t)

	sessions, err := store.GetSessionsForBook(12345)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDeleteSession(t *testing.T) {
	store := setupTestStore(t)
	bookID := addTestBook(t, store, "Dune", "Frank Herbert")

	id, err := store.AddSession(newTestSession(t, bookID, time.Now(), 30, 20))
	require.NoError(t, err)

	deleted, err := store.DeleteSession(id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteSession(id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteBookCascadesToSessions(t *testing.T) {
	store := setupTestStore(t)
	bookID := addTestBook(t, store, "Dune", "Frank Herbert")

	sessID, err := store.AddSession(newTestSession(t, bookID, time.Now(), 30, 20))
	require.NoError(t, err)

	deleted, err := store.DeleteBook(bookID)
	require.NoError(t, err)
	require.True(t, deleted)

	sess, err := store.GetSession(sessID)
	require.NoError(t, err)
	assert.Nil(t, sess, "sessions are removed with their book")

	sessions, err := store.GetSessionsForBook(bookID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStats(t *testing.T) {
	store := setupTestStore(t)

	t.Run("empty store", func(t *testing.T) {
		stats, err := store.Stats()
		require.NoError(t, err)
		assert.Zero(t, stats.TotalBooks)
		assert.Zero(t, stats.TotalSessions)
		assert.Zero(t, stats.TotalMinutes)
		assert.Empty(t, stats.BooksByStatus)
	})

	reading := newTestBook(t, "Dune", "Frank Herbert", 300)
	require.NoError(t, reading.SetStatus(entities.StatusReading))
	readingID, err := store.AddBook(reading)
	require.NoError(t, err)

	done := newTestBook(t, "The Hobbit", "J.R.R. Tolkien", 310)
	require.NoError(t, done.SetStatus(entities.StatusCompleted))
	_, err = store.AddBook(done)
	require.NoError(t, err)

	addTestBook(t, store, "Dune Messiah", "Frank Herbert")

	_, err = store.AddSession(newTestSession(t, readingID, time.Now(), 45, 30))
	require.NoError(t, err)
	_, err = store.AddSession(newTestSession(t, readingID, time.Now(), 15, 10))
	require.NoError(t, err)

	t.Run("populated store", func(t *testing.T) {
		stats, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalBooks)
		assert.Equal(t, int64(1), stats.BooksByStatus[entities.StatusReading])
		assert.Equal(t, int64(1), stats.BooksByStatus[entities.StatusCompleted])
		assert.Equal(t, int64(1), stats.BooksByStatus[entities.StatusToRead])
		assert.Equal(t, int64(2), stats.TotalSessions)
		assert.Equal(t, int64(60), stats.TotalMinutes)
	})
}
