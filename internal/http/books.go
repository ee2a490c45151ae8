package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/database"
	"github.com/shelfmark/shelfmark/internal/entities"
)

type BooksController struct {
	store *database.Store
}

func NewBooksController(store *database.Store) *BooksController {
	return &BooksController{store: store}
}

// BookRequest is the JSON body for creating or updating a book. Gin's
// binding layer rejects structurally bad input; the entity setters remain
// the source of truth for the invariants.
type BookRequest struct {
	Title          string     `json:"title" binding:"required"`
	Author         string     `json:"author" binding:"required"`
	ISBN           string     `json:"isbn"`
	PageCount      int        `json:"page_count" binding:"gte=0"`
	CurrentPage    int        `json:"current_page" binding:"gte=0"`
	StartDate      *time.Time `json:"start_date"`
	CompletionDate *time.Time `json:"completion_date"`
	Genre          string     `json:"genre"`
	Publisher      string     `json:"publisher"`
	YearPublished  int        `json:"year_published" binding:"gte=0,lte=9999"`
	Notes          string     `json:"notes"`
	Review         string     `json:"review"`
	Rating         int        `json:"rating" binding:"gte=0,lte=5"`
	CoverPath      string     `json:"cover_path"`
	Status         *int       `json:"status"`
}

// applyTo writes the request onto a book through its validating setters.
// The explicit dates are applied before the current page so that the
// progress auto-stamps never overwrite a client-supplied date.
func (req *BookRequest) applyTo(b *entities.Book) error {
	if err := b.SetTitle(req.Title); err != nil {
		return err
	}
	if err := b.SetAuthor(req.Author); err != nil {
		return err
	}
	if err := b.SetISBN(req.ISBN); err != nil {
		return err
	}
	if err := b.SetPageCount(req.PageCount); err != nil {
		return err
	}
	if err := b.SetYearPublished(req.YearPublished); err != nil {
		return err
	}
	if err := b.SetRating(req.Rating); err != nil {
		return err
	}
	if req.Status != nil {
		status, err := entities.StatusFromCode(*req.Status)
		if err != nil {
			return &entities.ValidationError{Field: "status", Reason: err.Error()}
		}
		if err := b.SetStatus(status); err != nil {
			return err
		}
	}
	b.SetGenre(req.Genre)
	b.SetPublisher(req.Publisher)
	b.SetNotes(req.Notes)
	b.SetReview(req.Review)
	b.SetCoverPath(req.CoverPath)
	if req.StartDate != nil {
		b.SetStartDate(*req.StartDate)
	}
	if req.CompletionDate != nil {
		b.SetCompletionDate(*req.CompletionDate)
	}
	return b.SetCurrentPage(req.CurrentPage)
}

func (req *BookRequest) toEntity() (*entities.Book, error) {
	b, err := entities.NewBook(req.Title, req.Author, req.ISBN, req.PageCount)
	if err != nil {
		return nil, err
	}
	if err := req.applyTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// BookPayload is the JSON shape of a book, stored fields plus derived ones.
type BookPayload struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn,omitempty"`
	PageCount       int        `json:"page_count"`
	CurrentPage     int        `json:"current_page"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	CompletionDate  *time.Time `json:"completion_date,omitempty"`
	Genre           string     `json:"genre,omitempty"`
	Publisher       string     `json:"publisher,omitempty"`
	YearPublished   int        `json:"year_published,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Review          string     `json:"review,omitempty"`
	Rating          int        `json:"rating"`
	CoverPath       string     `json:"cover_path,omitempty"`
	DateAdded       time.Time  `json:"date_added"`
	Status          int        `json:"status"`
	StatusName      string     `json:"status_name"`
	ProgressPercent float64    `json:"progress_percent"`
	IsStarted       bool       `json:"is_started"`
	IsCompleted     bool       `json:"is_completed"`
}

func bookPayload(b *entities.Book) BookPayload {
	rec := b.Record()
	return BookPayload{
		ID:              rec.ID,
		Title:           rec.Title,
		Author:          rec.Author,
		ISBN:            rec.ISBN,
		PageCount:       rec.PageCount,
		CurrentPage:     rec.CurrentPage,
		StartDate:       rec.StartDate,
		CompletionDate:  rec.CompletionDate,
		Genre:           rec.Genre,
		Publisher:       rec.Publisher,
		YearPublished:   rec.YearPublished,
		Notes:           rec.Notes,
		Review:          rec.Review,
		Rating:          rec.Rating,
		CoverPath:       rec.CoverPath,
		DateAdded:       rec.DateAdded,
		Status:          rec.Status.Code(),
		StatusName:      rec.Status.String(),
		ProgressPercent: b.ProgressPercentage(),
		IsStarted:       b.IsStarted(),
		IsCompleted:     b.IsCompleted(),
	}
}

func bookPayloads(books []*entities.Book) []BookPayload {
	payloads := make([]BookPayload, 0, len(books))
	for _, b := range books {
		payloads = append(payloads, bookPayload(b))
	}
	return payloads
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": bookPayloads(books), "count": len(books)})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.store.GetBook(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, bookPayload(book))
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	book, err := req.toEntity()
	if err != nil {
		respondEntityError(c, err, "create book")
		return
	}
	if _, err := controller.store.AddBook(book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, bookPayload(book))
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.store.GetBook(id)
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := req.applyTo(book); err != nil {
		respondEntityError(c, err, "update book")
		return
	}

	matched, err := controller.store.UpdateBook(book)
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	if !matched {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, bookPayload(book))
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := controller.store.DeleteBook(id)
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	if !deleted {
		respondNotFound(c, "book")
		return
	}
	c.Status(http.StatusNoContent)
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}
	books, err := controller.store.SearchBooks(query)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": bookPayloads(books), "count": len(books)})
}

func (controller *BooksController) GetStats(c *gin.Context) {
	stats, err := controller.store.Stats()
	if err != nil {
		respondInternalError(c, err, "stats")
		return
	}
	byStatus := make(map[string]int64, len(stats.BooksByStatus))
	for status, count := range stats.BooksByStatus {
		byStatus[status.String()] = count
	}
	c.JSON(http.StatusOK, gin.H{
		"total_books":     stats.TotalBooks,
		"books_by_status": byStatus,
		"total_sessions":  stats.TotalSessions,
		"total_minutes":   stats.TotalMinutes,
	})
}
