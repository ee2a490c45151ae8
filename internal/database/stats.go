package database

import "github.com/shelfmark/shelfmark/internal/entities"

// Stats summarizes the catalog.
type Stats struct {
	TotalBooks    int64
	BooksByStatus map[entities.BookStatus]int64
	TotalSessions int64
	TotalMinutes  int64
}

// Stats counts books (total and per status), sessions and minutes read.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{BooksByStatus: make(map[entities.BookStatus]int64)}

	if err := s.conn().Model(&bookRow{}).Count(&stats.TotalBooks).Error; err != nil {
		return nil, operationError("count books", err)
	}

	var perStatus []struct {
		Status int
		Count  int64
	}
	err := s.conn().Model(&bookRow{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&perStatus).Error
	if err != nil {
		return nil, operationError("count books by status", err)
	}
	for _, row := range perStatus {
		status, err := entities.StatusFromCode(row.Status)
		if err != nil {
			return nil, operationError("count books by status", err)
		}
		stats.BooksByStatus[status] = row.Count
	}

	if err := s.conn().Model(&sessionRow{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, operationError("count sessions", err)
	}

	row := s.conn().Model(&sessionRow{}).Select("COALESCE(SUM(duration_minutes), 0)").Row()
	if err := row.Scan(&stats.TotalMinutes); err != nil {
		return nil, operationError("sum session minutes", err)
	}

	return stats, nil
}
