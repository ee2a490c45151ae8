package database

import (
	"fmt"
	"time"

	"github.com/shelfmark/shelfmark/internal/entities"
)

// bookRow is the table-driven mapping between the books table and
// entities.Book: one struct field per column, each naming its column
// explicitly so a schema change cannot silently misalign the mapping.
// Timestamps are stored as epoch seconds; NULL means unset.
type bookRow struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Title          string  `gorm:"column:title;not null"`
	Author         string  `gorm:"column:author;not null"`
	ISBN           *string `gorm:"column:isbn"`
	PageCount      int     `gorm:"column:page_count;not null;default:0"`
	CurrentPage    int     `gorm:"column:current_page;not null;default:0"`
	StartDate      *int64  `gorm:"column:start_date"`
	CompletionDate *int64  `gorm:"column:completion_date"`
	Genre          *string `gorm:"column:genre"`
	Publisher      *string `gorm:"column:publisher"`
	YearPublished  *int    `gorm:"column:year_published"`
	Notes          *string `gorm:"column:notes"`
	Review         *string `gorm:"column:review"`
	Rating         int     `gorm:"column:rating;default:0"`
	CoverPath      *string `gorm:"column:cover_path"`
	DateAdded      int64   `gorm:"column:date_added;not null"`
	Status         int     `gorm:"column:status;default:0"`
}

func (bookRow) TableName() string { return "books" }

// sessionRow maps the reading_sessions table. Deleting a book cascades to
// its sessions through the foreign key.
type sessionRow struct {
	ID              int64   `gorm:"column:id;primaryKey;autoIncrement"`
	BookID          int64   `gorm:"column:book_id;not null"`
	SessionDate     int64   `gorm:"column:session_date;not null"`
	DurationMinutes int     `gorm:"column:duration_minutes;not null"`
	PagesRead       int     `gorm:"column:pages_read;not null"`
	StartPage       int     `gorm:"column:start_page;not null"`
	EndPage         int     `gorm:"column:end_page;not null"`
	Notes           *string `gorm:"column:notes"`

	Book *bookRow `gorm:"foreignKey:BookID;references:ID;constraint:OnDelete:CASCADE"`
}

func (sessionRow) TableName() string { return "reading_sessions" }

// cacheRow backs the api_cache table, reserved for future metadata caching.
// No Store operation exercises it.
type cacheRow struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CacheKey  string `gorm:"column:cache_key;uniqueIndex;not null"`
	CacheData string `gorm:"column:cache_data;not null"`
	CreatedAt int64  `gorm:"column:created_at;not null"`
	ExpiresAt int64  `gorm:"column:expires_at;not null"`
}

func (cacheRow) TableName() string { return "api_cache" }

func toBookRow(b *entities.Book) bookRow {
	rec := b.Record()
	year := rec.YearPublished
	return bookRow{
		ID:             rec.ID,
		Title:          rec.Title,
		Author:         rec.Author,
		ISBN:           textColumn(rec.ISBN),
		PageCount:      rec.PageCount,
		CurrentPage:    rec.CurrentPage,
		StartDate:      epochColumn(rec.StartDate),
		CompletionDate: epochColumn(rec.CompletionDate),
		Genre:          textColumn(rec.Genre),
		Publisher:      textColumn(rec.Publisher),
		YearPublished:  &year,
		Notes:          textColumn(rec.Notes),
		Review:         textColumn(rec.Review),
		Rating:         rec.Rating,
		CoverPath:      textColumn(rec.CoverPath),
		DateAdded:      rec.DateAdded.Unix(),
		Status:         rec.Status.Code(),
	}
}

func bookFromRow(row bookRow) (*entities.Book, error) {
	status, err := entities.StatusFromCode(row.Status)
	if err != nil {
		return nil, fmt.Errorf("book %d: %w", row.ID, err)
	}
	b, err := entities.RestoreBook(entities.BookRecord{
		ID:             row.ID,
		Title:          row.Title,
		Author:         row.Author,
		ISBN:           textValue(row.ISBN),
		PageCount:      row.PageCount,
		CurrentPage:    row.CurrentPage,
		StartDate:      timeValue(row.StartDate),
		CompletionDate: timeValue(row.CompletionDate),
		Genre:          textValue(row.Genre),
		Publisher:      textValue(row.Publisher),
		YearPublished:  intValue(row.YearPublished),
		Notes:          textValue(row.Notes),
		Review:         textValue(row.Review),
		Rating:         row.Rating,
		CoverPath:      textValue(row.CoverPath),
		DateAdded:      time.Unix(row.DateAdded, 0),
		Status:         status,
	})
	if err != nil {
		return nil, fmt.Errorf("book %d: %w", row.ID, err)
	}
	return b, nil
}

func toSessionRow(s *entities.ReadingSession) sessionRow {
	rec := s.Record()
	return sessionRow{
		ID:              rec.ID,
		BookID:          rec.BookID,
		SessionDate:     rec.SessionDate.Unix(),
		DurationMinutes: rec.DurationMinutes,
		PagesRead:       rec.PagesRead,
		StartPage:       rec.StartPage,
		EndPage:         rec.EndPage,
		Notes:           textColumn(rec.Notes),
	}
}

func sessionFromRow(row sessionRow) (*entities.ReadingSession, error) {
	s, err := entities.RestoreReadingSession(entities.SessionRecord{
		ID:              row.ID,
		BookID:          row.BookID,
		SessionDate:     time.Unix(row.SessionDate, 0),
		DurationMinutes: row.DurationMinutes,
		PagesRead:       row.PagesRead,
		StartPage:       row.StartPage,
		EndPage:         row.EndPage,
		Notes:           textValue(row.Notes),
	})
	if err != nil {
		return nil, fmt.Errorf("reading session %d: %w", row.ID, err)
	}
	return s, nil
}

// textColumn always writes a value, never NULL, matching how empty strings
// were persisted historically. NULLs in old rows still read back as empty.
func textColumn(s string) *string {
	return &s
}

func textValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func epochColumn(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}

func timeValue(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := time.Unix(*v, 0)
	return &t
}
