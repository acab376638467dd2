package sqlite

import (
	"fmt"
	"time"

	"github.com/mandalnilabja/bioalign/internal/storage/models"
)

// LogRequest stores a request log entry
func (s *Storage) LogRequest(log *models.RequestLog) error {
	if log == nil || log.Method == "" || log.Path == "" {
		return fmt.Errorf("%w: method and path are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if log.ID == "" {
		log.ID = generateID("log")
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO request_logs (id, request_id, method, path, status_code,
			duration_ms, remote_addr, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.RequestID, log.Method, log.Path, log.StatusCode,
		log.DurationMs, nullString(log.RemoteAddr), nullString(log.UserAgent), log.CreatedAt.UTC())

	return err
}

// GetRequestLogs retrieves request logs with filtering, newest first
func (s *Storage) GetRequestLogs(filter models.LogFilter) ([]*models.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT id, request_id, method, path, status_code, duration_ms,
		COALESCE(remote_addr, ''), COALESCE(user_agent, ''), created_at
		FROM request_logs WHERE 1=1`

	var args []interface{}

	if filter.Method != "" {
		query += " AND method = ?"
		args = append(args, filter.Method)
	}
	if filter.Path != "" {
		query += " AND path = ?"
		args = append(args, filter.Path)
	}
	if filter.StatusCode != nil {
		query += " AND status_code = ?"
		args = append(args, *filter.StatusCode)
	}
	if filter.StartDate != nil {
		query += " AND created_at >= ?"
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query += " AND created_at <= ?"
		args = append(args, filter.EndDate.UTC())
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.RequestLog
	for rows.Next() {
		var log models.RequestLog

		err := rows.Scan(&log.ID, &log.RequestID, &log.Method, &log.Path, &log.StatusCode,
			&log.DurationMs, &log.RemoteAddr, &log.UserAgent, &log.CreatedAt)
		if err != nil {
			return nil, err
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

// CountRequestLogs returns the number of stored request logs
func (s *Storage) CountRequestLogs() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM request_logs").Scan(&count)
	return count, err
}

// DeleteRequestLogs removes logs created before 00:00 UTC of the given date (YYYY-MM-DD)
func (s *Storage) DeleteRequestLogs(olderThan string) (int64, error) {
	cutoff, err := time.Parse("2006-01-02", olderThan)
	if err != nil {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	// Bound as time.Time so it is formatted like the stored created_at values.
	result, err := s.db.Exec("DELETE FROM request_logs WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
