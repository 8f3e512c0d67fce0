package repository

import (
	"database/sql"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
)

// timeLayout is the RFC3339 format for storing timestamps in SQLite
const timeLayout = time.RFC3339

// parseTime parses a time string in RFC3339 format
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// formatTime returns the current time formatted as RFC3339
func formatTime() string {
	return time.Now().Format(timeLayout)
}

// Calendar dates are stored as YYYY-MM-DD so they compare as text
func formatDate(t time.Time) string {
	return domain.Day(t).Format(domain.DateLayout)
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(t), Valid: true}
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, time.UTC)
}
