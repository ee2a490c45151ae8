package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmark/shelfmark/internal/isbn"
	"github.com/shelfmark/shelfmark/internal/metadata"
)

type MetadataController struct {
	client *metadata.OpenLibraryClient
}

// NewMetadataController accepts a nil client when metadata lookup is
// disabled; the endpoint then reports the feature as unavailable.
func NewMetadataController(client *metadata.OpenLibraryClient) *MetadataController {
	return &MetadataController{client: client}
}

func (controller *MetadataController) LookupISBN(c *gin.Context) {
	if controller.client == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "metadata lookup is disabled"})
		return
	}

	raw := c.Param("isbn")
	if !isbn.Valid(raw) {
		respondBadRequest(c, "not a valid ISBN-13")
		return
	}

	meta, err := controller.client.LookupISBN(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			respondNotFound(c, "isbn")
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "metadata lookup failed"})
		return
	}
	c.JSON(http.StatusOK, meta)
}
