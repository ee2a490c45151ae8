package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/database"
	"github.com/shelfmark/shelfmark/internal/metadata"
)

// RouterConfig carries the router's dependencies from the composition root.
type RouterConfig struct {
	Store *database.Store
	// Metadata may be nil when OpenLibrary lookup is disabled.
	Metadata *metadata.OpenLibraryClient
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", Health)

	books := NewBooksController(cfg.Store)
	sessions := NewSessionsController(cfg.Store)
	meta := NewMetadataController(cfg.Metadata)

	api := router.Group("/api")
	{
		api.GET("/books", books.GetAllBooks)
		api.POST("/books", books.CreateBook)
		api.GET("/books/search", books.SearchBooks)
		api.GET("/books/:id", books.GetBook)
		api.PUT("/books/:id", books.UpdateBook)
		api.DELETE("/books/:id", books.DeleteBook)

		api.GET("/books/:id/sessions", sessions.ListSessions)
		api.POST("/books/:id/sessions", sessions.CreateSession)
		api.DELETE("/sessions/:id", sessions.DeleteSession)

		api.GET("/stats", books.GetStats)
		api.GET("/metadata/isbn/:isbn", meta.LookupISBN)
	}

	return router
}
