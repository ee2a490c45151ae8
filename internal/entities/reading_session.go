package entities

import (
	"fmt"
	"time"
)

// ReadingSession is one logged interval of reading activity against a book.
type ReadingSession struct {
	id              int64
	bookID          int64
	sessionDate     time.Time
	durationMinutes int
	pagesRead       int
	startPage       int
	endPage         int
	notes           string
}

// NewReadingSession creates a validated session for the given book.
func NewReadingSession(bookID int64, sessionDate time.Time, durationMinutes, pagesRead, startPage, endPage int, notes string) (*ReadingSession, error) {
	s := &ReadingSession{sessionDate: sessionDate, notes: notes}
	if err := s.SetBookID(bookID); err != nil {
		return nil, err
	}
	if err := s.SetDurationMinutes(durationMinutes); err != nil {
		return nil, err
	}
	if err := s.SetPagesRead(pagesRead); err != nil {
		return nil, err
	}
	if err := s.SetPageRange(startPage, endPage); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ReadingSession) ID() int64              { return s.id }
func (s *ReadingSession) BookID() int64          { return s.bookID }
func (s *ReadingSession) SessionDate() time.Time { return s.sessionDate }
func (s *ReadingSession) DurationMinutes() int   { return s.durationMinutes }
func (s *ReadingSession) PagesRead() int         { return s.pagesRead }
func (s *ReadingSession) StartPage() int         { return s.startPage }
func (s *ReadingSession) EndPage() int           { return s.endPage }
func (s *ReadingSession) Notes() string          { return s.notes }

func (s *ReadingSession) SetID(id int64) error {
	if id < 0 {
		return validationError("id", "must not be negative")
	}
	s.id = id
	return nil
}

func (s *ReadingSession) SetBookID(bookID int64) error {
	if bookID <= 0 {
		return validationError("book id", "must be positive")
	}
	s.bookID = bookID
	return nil
}

func (s *ReadingSession) SetSessionDate(date time.Time) {
	s.sessionDate = date
}

func (s *ReadingSession) SetDurationMinutes(minutes int) error {
	if minutes < 0 {
		return validationError("duration", "must not be negative")
	}
	s.durationMinutes = minutes
	return nil
}

func (s *ReadingSession) SetPagesRead(pages int) error {
	if pages < 0 {
		return validationError("pages read", "must not be negative")
	}
	s.pagesRead = pages
	return nil
}

// SetPageRange sets both page bounds together so that an inconsistent pair
// can never be observed.
func (s *ReadingSession) SetPageRange(startPage, endPage int) error {
	if startPage < 0 || endPage < 0 {
		return validationError("page range", "page numbers must not be negative")
	}
	if endPage < startPage {
		return validationError("page range", "end page must not be before start page")
	}
	s.startPage = startPage
	s.endPage = endPage
	return nil
}

func (s *ReadingSession) SetNotes(notes string) {
	s.notes = notes
}

// PagesPerHour returns the reading speed, or 0 for a zero-duration session.
func (s *ReadingSession) PagesPerHour() float64 {
	if s.durationMinutes == 0 {
		return 0
	}
	return float64(s.pagesRead) / (float64(s.durationMinutes) / 60)
}

// PagesPerMinute returns the reading speed, or 0 for a zero-duration session.
func (s *ReadingSession) PagesPerMinute() float64 {
	if s.durationMinutes == 0 {
		return 0
	}
	return float64(s.pagesRead) / float64(s.durationMinutes)
}

// FormattedDuration renders the duration as "2h 15m", "3h" or "45m".
func (s *ReadingSession) FormattedDuration() string {
	hours := s.durationMinutes / 60
	minutes := s.durationMinutes % 60
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

// SessionRecord is a flat snapshot of a ReadingSession's persisted state.
type SessionRecord struct {
	ID              int64
	BookID          int64
	SessionDate     time.Time
	DurationMinutes int
	PagesRead       int
	StartPage       int
	EndPage         int
	Notes           string
}

// Record returns a snapshot of the session's state.
func (s *ReadingSession) Record() SessionRecord {
	return SessionRecord{
		ID:              s.id,
		BookID:          s.bookID,
		SessionDate:     s.sessionDate,
		DurationMinutes: s.durationMinutes,
		PagesRead:       s.pagesRead,
		StartPage:       s.startPage,
		EndPage:         s.endPage,
		Notes:           s.notes,
	}
}

// RestoreReadingSession rebuilds a session from a stored snapshot,
// re-validating every invariant.
func RestoreReadingSession(rec SessionRecord) (*ReadingSession, error) {
	if rec.ID < 0 {
		return nil, validationError("id", "must not be negative")
	}
	s, err := NewReadingSession(rec.BookID, rec.SessionDate, rec.DurationMinutes, rec.PagesRead, rec.StartPage, rec.EndPage, rec.Notes)
	if err != nil {
		return nil, err
	}
	s.id = rec.ID
	return s, nil
}
