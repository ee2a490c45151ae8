package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/entities"
)

// AddSession inserts a reading session, assigns its identifier and reflects
// it back. Inserting against a book that does not exist fails the foreign
// key and is reported as an operation error naming the book.
func (s *Store) AddSession(sess *entities.ReadingSession) (int64, error) {
	row := toSessionRow(sess)
	row.ID = 0
	if err := s.conn().Create(&row).Error; err != nil {
		if IsConstraintViolation(err) {
			return 0, operationError("insert session", fmt.Errorf("book %d does not exist: %w", sess.BookID(), err))
		}
		return 0, operationError("insert session", err)
	}
	if err := sess.SetID(row.ID); err != nil {
		return 0, operationError("insert session", err)
	}
	return row.ID, nil
}

// GetSession returns the session with the given identifier, or (nil, nil)
// when no such row exists.
func (s *Store) GetSession(id int64) (*entities.ReadingSession, error) {
	var row sessionRow
	err := s.conn().First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, operationError("get session", err)
	}
	sess, err := sessionFromRow(row)
	if err != nil {
		return nil, operationError("get session", err)
	}
	return sess, nil
}

// GetSessionsForBook returns every session logged against the book, ordered
// by session date then identifier. An unknown book yields an empty slice.
func (s *Store) GetSessionsForBook(bookID int64) ([]*entities.ReadingSession, error) {
	var rows []sessionRow
	err := s.conn().
		Where("book_id = ?", bookID).
		Order("session_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, operationError("list sessions", err)
	}
	sessions := make([]*entities.ReadingSession, 0, len(rows))
	for _, row := range rows {
		sess, err := sessionFromRow(row)
		if err != nil {
			return nil, operationError("list sessions", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// DeleteSession removes the session with the given identifier. It returns
// false, without error, when no row matched.
func (s *Store) DeleteSession(id int64) (bool, error) {
	res := s.conn().Delete(&sessionRow{}, id)
	if res.Error != nil {
		return false, operationError("delete session", res.Error)
	}
	return res.RowsAffected > 0, nil
}
