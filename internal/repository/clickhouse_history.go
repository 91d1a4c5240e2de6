package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
)

// HistorySchema is the DDL for the fetch audit table.
func HistorySchema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.fetch_history (
			keyword String,
			window_label String,
			origin String,
			points UInt32,
			duration_ms UInt64,
			requested_at DateTime
		) ENGINE=MergeTree ORDER BY (requested_at)`, database),
	}
}

// ClickHouseHistory persists fetch events to ClickHouse.
type ClickHouseHistory struct {
	db    *sql.DB
	table string
}

func NewClickHouseHistory(db *sql.DB, database string) *ClickHouseHistory {
	return &ClickHouseHistory{db: db, table: database + ".fetch_history"}
}

func (s *ClickHouseHistory) Record(ctx context.Context, ev *models.FetchEvent) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (keyword, window_label, origin, points, duration_ms, requested_at) VALUES (?, ?, ?, ?, ?, ?)",
		s.table,
	)
	_, err := s.db.ExecContext(ctx, query,
		ev.Keyword, ev.WindowLabel, string(ev.Origin), uint32(ev.Points), uint64(ev.DurationMs), ev.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fetch event: %w", err)
	}
	return nil
}

func (s *ClickHouseHistory) Recent(ctx context.Context, limit int) ([]models.FetchEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := fmt.Sprintf(
		"SELECT keyword, window_label, origin, points, duration_ms, requested_at FROM %s ORDER BY requested_at DESC LIMIT %d",
		s.table, limit,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query fetch history: %w", err)
	}
	defer rows.Close()

	var out []models.FetchEvent
	for rows.Next() {
		var ev models.FetchEvent
		var origin string
		var points uint32
		var durationMs uint64
		if err := rows.Scan(&ev.Keyword, &ev.WindowLabel, &origin, &points, &durationMs, &ev.RequestedAt); err != nil {
			return nil, fmt.Errorf("scan fetch event: %w", err)
		}
		ev.Origin = models.Origin(origin)
		ev.Points = int(points)
		ev.DurationMs = int64(durationMs)
		out = append(out, ev)
	}
	return out, rows.Err()
}
