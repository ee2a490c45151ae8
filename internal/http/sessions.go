package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/database"
	"github.com/shelfmark/shelfmark/internal/entities"
)

type SessionsController struct {
	store *database.Store
}

func NewSessionsController(store *database.Store) *SessionsController {
	return &SessionsController{store: store}
}

// SessionRequest is the JSON body for logging a reading session. The
// session date defaults to now when omitted.
type SessionRequest struct {
	SessionDate     *time.Time `json:"session_date"`
	DurationMinutes int        `json:"duration_minutes" binding:"gte=0"`
	PagesRead       int        `json:"pages_read" binding:"gte=0"`
	StartPage       int        `json:"start_page" binding:"gte=0"`
	EndPage         int        `json:"end_page" binding:"gte=0"`
	Notes           string     `json:"notes"`
}

// SessionPayload is the JSON shape of a session, stored fields plus derived
// reading-speed metrics.
type SessionPayload struct {
	ID                int64     `json:"id"`
	BookID            int64     `json:"book_id"`
	SessionDate       time.Time `json:"session_date"`
	DurationMinutes   int       `json:"duration_minutes"`
	PagesRead         int       `json:"pages_read"`
	StartPage         int       `json:"start_page"`
	EndPage           int       `json:"end_page"`
	Notes             string    `json:"notes,omitempty"`
	PagesPerHour      float64   `json:"pages_per_hour"`
	FormattedDuration string    `json:"formatted_duration"`
}

func sessionPayload(s *entities.ReadingSession) SessionPayload {
	rec := s.Record()
	return SessionPayload{
		ID:                rec.ID,
		BookID:            rec.BookID,
		SessionDate:       rec.SessionDate,
		DurationMinutes:   rec.DurationMinutes,
		PagesRead:         rec.PagesRead,
		StartPage:         rec.StartPage,
		EndPage:           rec.EndPage,
		Notes:             rec.Notes,
		PagesPerHour:      s.PagesPerHour(),
		FormattedDuration: s.FormattedDuration(),
	}
}

func (controller *SessionsController) ListSessions(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.store.GetBook(bookID)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	sessions, err := controller.store.GetSessionsForBook(bookID)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}
	payloads := make([]SessionPayload, 0, len(sessions))
	for _, s := range sessions {
		payloads = append(payloads, sessionPayload(s))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": payloads, "count": len(payloads)})
}

func (controller *SessionsController) CreateSession(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.store.GetBook(bookID)
	if err != nil {
		respondInternalError(c, err, "create session")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	date := time.Now()
	if req.SessionDate != nil {
		date = *req.SessionDate
	}
	session, err := entities.NewReadingSession(bookID, date, req.DurationMinutes, req.PagesRead, req.StartPage, req.EndPage, req.Notes)
	if err != nil {
		respondEntityError(c, err, "create session")
		return
	}
	if _, err := controller.store.AddSession(session); err != nil {
		respondInternalError(c, err, "create session")
		return
	}
	c.JSON(http.StatusCreated, sessionPayload(session))
}

func (controller *SessionsController) DeleteSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := controller.store.DeleteSession(id)
	if err != nil {
		respondInternalError(c, err, "delete session")
		return
	}
	if !deleted {
		respondNotFound(c, "session")
		return
	}
	c.Status(http.StatusNoContent)
}
