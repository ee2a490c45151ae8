// Package metadata fetches book metadata from the OpenLibrary API, used to
// prefill catalog entries from an ISBN. Results are not cached.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/shelfmark/shelfmark/internal/isbn"
)

// ErrNotFound means OpenLibrary has no record for the requested ISBN.
var ErrNotFound = errors.New("isbn not found")

const userAgent = "Shelfmark/1.0 (https://github.com/shelfmark/shelfmark)"

// BookMetadata contains book information fetched from OpenLibrary.
type BookMetadata struct {
	Title           string `json:"title,omitempty"`
	Author          string `json:"author,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	CoverURL        string `json:"cover_url,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
	PageCount       int    `json:"page_count,omitempty"`
}

// OpenLibraryClient fetches book metadata from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewOpenLibraryClient creates a client with a request timeout and a one
// request per second rate limit.
func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: newRateLimiter(time.Second),
	}
}

type openLibraryBook struct {
	Key           string      `json:"key"`
	Title         string      `json:"title"`
	Publishers    []string    `json:"publishers"`
	PublishDate   string      `json:"publish_date"`
	NumberOfPages int         `json:"number_of_pages"`
	Authors       []authorRef `json:"authors"`
}

type authorRef struct {
	Key string `json:"key"`
}

// LookupISBN fetches metadata for an ISBN-13. An unknown ISBN yields
// ErrNotFound.
func (c *OpenLibraryClient) LookupISBN(ctx context.Context, rawISBN string) (*BookMetadata, error) {
	cleaned := isbn.Normalize(rawISBN)
	if !isbn.Valid(cleaned) {
		return nil, fmt.Errorf("invalid ISBN: %s", rawISBN)
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, cleaned)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cleaned)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var bookData openLibraryBook
	if err := json.NewDecoder(resp.Body).Decode(&bookData); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	metadata := &BookMetadata{
		Title:     bookData.Title,
		ISBN:      cleaned,
		PageCount: bookData.NumberOfPages,
		CoverURL:  fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", cleaned),
	}
	if bookData.PublishDate != "" {
		metadata.PublicationYear = extractYear(bookData.PublishDate)
	}
	if len(bookData.Publishers) > 0 {
		metadata.Publisher = bookData.Publishers[0]
	}

	if len(bookData.Authors) > 0 {
		authorName, err := c.fetchAuthorName(ctx, bookData.Authors[0].Key)
		if err == nil {
			metadata.Author = authorName
		}
	}

	return metadata, nil
}

func (c *OpenLibraryClient) fetchAuthorName(ctx context.Context, authorKey string) (string, error) {
	if authorKey == "" {
		return "", fmt.Errorf("empty author key")
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s%s.json", c.baseURL, authorKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status: %d", resp.StatusCode)
	}

	var authorData struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&authorData); err != nil {
		return "", err
	}

	return authorData.Name, nil
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// extractYear pulls a four-digit year out of OpenLibrary's free-form
// publish_date strings ("2018", "January 15, 2019", "2021-06-15").
func extractYear(publishDate string) int {
	match := yearPattern.FindString(publishDate)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}
