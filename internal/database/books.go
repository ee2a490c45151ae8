package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/entities"
)

// AddBook inserts a fully populated book as one row, ignoring any
// identifier it carries. The newly assigned identifier is returned and
// reflected back onto the book.
func (s *Store) AddBook(b *entities.Book) (int64, error) {
	row := toBookRow(b)
	row.ID = 0
	if err := s.conn().Create(&row).Error; err != nil {
		return 0, operationError("insert book", err)
	}
	if err := b.SetID(row.ID); err != nil {
		return 0, operationError("insert book", err)
	}
	return row.ID, nil
}

// GetBook returns the book with the given identifier, or (nil, nil) when no
// such row exists. A missing row is not an error.
func (s *Store) GetBook(id int64) (*entities.Book, error) {
	var row bookRow
	err := s.conn().First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, operationError("get book", err)
	}
	b, err := bookFromRow(row)
	if err != nil {
		return nil, operationError("get book", err)
	}
	return b, nil
}

// GetAllBooks returns every book in ascending identifier order, which is
// insertion order.
func (s *Store) GetAllBooks() ([]*entities.Book, error) {
	var rows []bookRow
	if err := s.conn().Order("id ASC").Find(&rows).Error; err != nil {
		return nil, operationError("list books", err)
	}
	books := make([]*entities.Book, 0, len(rows))
	for _, row := range rows {
		b, err := bookFromRow(row)
		if err != nil {
			return nil, operationError("list books", err)
		}
		books = append(books, b)
	}
	return books, nil
}

// SearchBooks returns books whose title or author contains the query,
// case-insensitively, ordered by title.
func (s *Store) SearchBooks(query string) ([]*entities.Book, error) {
	pattern := "%" + query + "%"
	var rows []bookRow
	err := s.conn().
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", pattern, pattern).
		Order("title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, operationError("search books", err)
	}
	books := make([]*entities.Book, 0, len(rows))
	for _, row := range rows {
		b, err := bookFromRow(row)
		if err != nil {
			return nil, operationError("search books", err)
		}
		books = append(books, b)
	}
	return books, nil
}

// UpdateBook rewrites every column of the row matching the book's
// identifier. It returns false, without error, when no row matched.
func (s *Store) UpdateBook(b *entities.Book) (bool, error) {
	if b.ID() <= 0 {
		return false, operationError("update book", fmt.Errorf("book has no identifier"))
	}
	row := toBookRow(b)
	res := s.conn().Model(&bookRow{}).Where("id = ?", row.ID).Select("*").Omit("id").Updates(row)
	if res.Error != nil {
		return false, operationError("update book", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteBook removes the row with the given identifier, cascading to its
// reading sessions. It returns false, without error, when no row matched.
func (s *Store) DeleteBook(id int64) (bool, error) {
	res := s.conn().Delete(&bookRow{}, id)
	if res.Error != nil {
		return false, operationError("delete book", res.Error)
	}
	return res.RowsAffected > 0, nil
}
