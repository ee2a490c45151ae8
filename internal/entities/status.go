package entities

import "fmt"

// BookStatus is the closed set of reading states a book can occupy. The
// integer codes are what the store persists in the status column.
type BookStatus int

const (
	StatusToRead    BookStatus = 0
	StatusReading   BookStatus = 1
	StatusCompleted BookStatus = 2
	StatusDNF       BookStatus = 3
	StatusWishlist  BookStatus = 4
)

// Valid reports whether s is one of the defined statuses.
func (s BookStatus) Valid() bool {
	return s >= StatusToRead && s <= StatusWishlist
}

// Code returns the integer code stored in the database.
func (s BookStatus) Code() int {
	return int(s)
}

func (s BookStatus) String() string {
	switch s {
	case StatusToRead:
		return "To Read"
	case StatusReading:
		return "Reading"
	case StatusCompleted:
		return "Completed"
	case StatusDNF:
		return "Did Not Finish"
	case StatusWishlist:
		return "Wishlist"
	default:
		return "Unknown"
	}
}

// StatusFromCode converts a persisted integer code back into a BookStatus.
// An out-of-range code is an error rather than a silent ToRead fallback, so
// a corrupted status column surfaces instead of being masked.
func StatusFromCode(code int) (BookStatus, error) {
	s := BookStatus(code)
	if !s.Valid() {
		return StatusToRead, fmt.Errorf("unknown book status code %d", code)
	}
	return s, nil
}

// AllStatuses returns every defined status in code order.
func AllStatuses() []BookStatus {
	return []BookStatus{StatusToRead, StatusReading, StatusCompleted, StatusDNF, StatusWishlist}
}
