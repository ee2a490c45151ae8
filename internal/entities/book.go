package entities

import (
	"fmt"
	"time"
)

// Book is one catalog entry: bibliographic metadata plus reading progress.
// Fields are unexported and mutated through validating setters; optional
// timestamps are nil when unset, which is distinct from a zero time.
type Book struct {
	id             int64
	title          string
	author         string
	isbn           string
	pageCount      int
	currentPage    int
	startDate      *time.Time
	completionDate *time.Time
	genre          string
	publisher      string
	yearPublished  int
	notes          string
	review         string
	rating         int
	coverPath      string
	dateAdded      time.Time
	status         BookStatus
}

// NewBook creates a book with the basic metadata. The identifier stays 0
// until the store assigns one; the date added defaults to now.
func NewBook(title, author, isbn string, pageCount int) (*Book, error) {
	b := &Book{
		dateAdded: time.Now(),
		status:    StatusToRead,
	}
	if err := b.SetTitle(title); err != nil {
		return nil, err
	}
	if err := b.SetAuthor(author); err != nil {
		return nil, err
	}
	if err := b.SetISBN(isbn); err != nil {
		return nil, err
	}
	if err := b.SetPageCount(pageCount); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Book) ID() int64                  { return b.id }
func (b *Book) Title() string              { return b.title }
func (b *Book) Author() string             { return b.author }
func (b *Book) ISBN() string               { return b.isbn }
func (b *Book) PageCount() int             { return b.pageCount }
func (b *Book) CurrentPage() int           { return b.currentPage }
func (b *Book) Genre() string              { return b.genre }
func (b *Book) Publisher() string          { return b.publisher }
func (b *Book) YearPublished() int         { return b.yearPublished }
func (b *Book) Notes() string              { return b.notes }
func (b *Book) Review() string             { return b.review }
func (b *Book) Rating() int                { return b.rating }
func (b *Book) CoverPath() string          { return b.coverPath }
func (b *Book) DateAdded() time.Time       { return b.dateAdded }
func (b *Book) Status() BookStatus         { return b.status }

// StartDate returns when reading started, or nil if the book was never
// started. The returned pointer is a copy.
func (b *Book) StartDate() *time.Time {
	return copyTime(b.startDate)
}

// CompletionDate returns when reading finished, or nil if the book was never
// completed. The returned pointer is a copy.
func (b *Book) CompletionDate() *time.Time {
	return copyTime(b.completionDate)
}

// SetID records the store-assigned identifier.
func (b *Book) SetID(id int64) error {
	if id < 0 {
		return validationError("id", "must not be negative")
	}
	b.id = id
	return nil
}

func (b *Book) SetTitle(title string) error {
	if title == "" {
		return validationError("title", "must not be empty")
	}
	b.title = title
	return nil
}

func (b *Book) SetAuthor(author string) error {
	if author == "" {
		return validationError("author", "must not be empty")
	}
	b.author = author
	return nil
}

// SetISBN accepts an empty string or exactly 13 characters. Checksum
// validity is the isbn package's concern, not the entity's.
func (b *Book) SetISBN(isbn string) error {
	if isbn != "" && len(isbn) != 13 {
		return validationError("isbn", "must be empty or exactly 13 characters")
	}
	b.isbn = isbn
	return nil
}

// SetPageCount changes the total page count. Lowering it below the current
// page clamps the current page down to the new count; this is deliberate
// saturation, not an error.
func (b *Book) SetPageCount(count int) error {
	if count < 0 {
		return validationError("page count", "must not be negative")
	}
	b.pageCount = count
	if b.currentPage > count {
		b.currentPage = count
	}
	return nil
}

// SetCurrentPage moves the reading position. The first move off page zero
// stamps the start date, and reaching a positive page count stamps the
// completion date; neither stamp ever overwrites an existing date.
func (b *Book) SetCurrentPage(page int) error {
	if page < 0 {
		return validationError("current page", "must not be negative")
	}
	if b.pageCount > 0 && page > b.pageCount {
		return validationError("current page", fmt.Sprintf("must not exceed page count %d", b.pageCount))
	}
	b.currentPage = page
	if page > 0 && b.startDate == nil {
		now := time.Now()
		b.startDate = &now
	}
	if b.pageCount > 0 && page == b.pageCount && b.completionDate == nil {
		now := time.Now()
		b.completionDate = &now
	}
	return nil
}

func (b *Book) SetStartDate(date time.Time) {
	d := date
	b.startDate = &d
}

func (b *Book) SetCompletionDate(date time.Time) {
	d := date
	b.completionDate = &d
}

func (b *Book) SetGenre(genre string)         { b.genre = genre }
func (b *Book) SetPublisher(publisher string) { b.publisher = publisher }
func (b *Book) SetNotes(notes string)         { b.notes = notes }
func (b *Book) SetReview(review string)       { b.review = review }
func (b *Book) SetCoverPath(path string)      { b.coverPath = path }
func (b *Book) SetDateAdded(date time.Time)   { b.dateAdded = date }

func (b *Book) SetYearPublished(year int) error {
	if year < 0 || year > 9999 {
		return validationError("year published", "must be between 0 and 9999")
	}
	b.yearPublished = year
	return nil
}

func (b *Book) SetRating(rating int) error {
	if rating < 0 || rating > 5 {
		return validationError("rating", "must be between 0 and 5")
	}
	b.rating = rating
	return nil
}

func (b *Book) SetStatus(status BookStatus) error {
	if !status.Valid() {
		return validationError("status", fmt.Sprintf("unknown status code %d", int(status)))
	}
	b.status = status
	return nil
}

// IsStarted reports whether any reading progress exists.
func (b *Book) IsStarted() bool {
	return b.currentPage > 0 || b.startDate != nil
}

// IsCompleted reports whether the book has been read to the end.
func (b *Book) IsCompleted() bool {
	return (b.pageCount > 0 && b.currentPage == b.pageCount) || b.completionDate != nil
}

// ProgressPercentage returns reading completion capped at 100. Books with
// no page count or no progress report 0.
func (b *Book) ProgressPercentage() float64 {
	if b.pageCount <= 0 || b.currentPage <= 0 {
		return 0
	}
	pct := float64(b.currentPage) / float64(b.pageCount) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// MarkAsCompleted jumps the current page to the page count and stamps the
// completion date.
func (b *Book) MarkAsCompleted() {
	if b.pageCount > 0 {
		b.currentPage = b.pageCount
	}
	now := time.Now()
	b.completionDate = &now
}

// ResetProgress clears the reading position and both progress dates.
func (b *Book) ResetProgress() {
	b.currentPage = 0
	b.startDate = nil
	b.completionDate = nil
}

// BookRecord is a flat snapshot of a Book's persisted state. The store maps
// it to and from table rows.
type BookRecord struct {
	ID             int64
	Title          string
	Author         string
	ISBN           string
	PageCount      int
	CurrentPage    int
	StartDate      *time.Time
	CompletionDate *time.Time
	Genre          string
	Publisher      string
	YearPublished  int
	Notes          string
	Review         string
	Rating         int
	CoverPath      string
	DateAdded      time.Time
	Status         BookStatus
}

// Record returns a snapshot of the book's state.
func (b *Book) Record() BookRecord {
	return BookRecord{
		ID:             b.id,
		Title:          b.title,
		Author:         b.author,
		ISBN:           b.isbn,
		PageCount:      b.pageCount,
		CurrentPage:    b.currentPage,
		StartDate:      copyTime(b.startDate),
		CompletionDate: copyTime(b.completionDate),
		Genre:          b.genre,
		Publisher:      b.publisher,
		YearPublished:  b.yearPublished,
		Notes:          b.notes,
		Review:         b.review,
		Rating:         b.rating,
		CoverPath:      b.coverPath,
		DateAdded:      b.dateAdded,
		Status:         b.status,
	}
}

// RestoreBook rebuilds a Book from a stored snapshot. It enforces the same
// invariants as the setters but applies none of their progress side effects,
// so an absent start or completion date stays absent.
func RestoreBook(rec BookRecord) (*Book, error) {
	if rec.ID < 0 {
		return nil, validationError("id", "must not be negative")
	}
	if rec.Title == "" {
		return nil, validationError("title", "must not be empty")
	}
	if rec.Author == "" {
		return nil, validationError("author", "must not be empty")
	}
	if rec.ISBN != "" && len(rec.ISBN) != 13 {
		return nil, validationError("isbn", "must be empty or exactly 13 characters")
	}
	if rec.PageCount < 0 {
		return nil, validationError("page count", "must not be negative")
	}
	if rec.CurrentPage < 0 || (rec.PageCount > 0 && rec.CurrentPage > rec.PageCount) {
		return nil, validationError("current page", "out of range for page count")
	}
	if rec.YearPublished < 0 || rec.YearPublished > 9999 {
		return nil, validationError("year published", "must be between 0 and 9999")
	}
	if rec.Rating < 0 || rec.Rating > 5 {
		return nil, validationError("rating", "must be between 0 and 5")
	}
	if !rec.Status.Valid() {
		return nil, validationError("status", fmt.Sprintf("unknown status code %d", int(rec.Status)))
	}
	return &Book{
		id:             rec.ID,
		title:          rec.Title,
		author:         rec.Author,
		isbn:           rec.ISBN,
		pageCount:      rec.PageCount,
		currentPage:    rec.CurrentPage,
		startDate:      copyTime(rec.StartDate),
		completionDate: copyTime(rec.CompletionDate),
		genre:          rec.Genre,
		publisher:      rec.Publisher,
		yearPublished:  rec.YearPublished,
		notes:          rec.Notes,
		review:         rec.Review,
		rating:         rec.Rating,
		coverPath:      rec.CoverPath,
		dateAdded:      rec.DateAdded,
		status:         rec.Status,
	}, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
