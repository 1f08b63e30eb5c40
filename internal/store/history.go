package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Submission describes one successful POST /v1/tasks.
type Submission struct {
	TaskIDs []string
	URLs    []string
	Quality string
	Tracks  []int
}

// HistoryEntry is one recorded task.
type HistoryEntry struct {
	ID          int64     `db:"id" json:"id"`
	TaskID      string    `db:"task_id" json:"taskId"`
	URL         string    `db:"url" json:"url"`
	Quality     string    `db:"quality" json:"quality"`
	Tracks      []int     `db:"-" json:"tracks,omitempty"`
	SubmittedAt time.Time `db:"-" json:"submittedAt"`
}

type historyRow struct {
	HistoryEntry
	TracksRaw   string `db:"tracks"`
	SubmittedNS int64  `db:"submitted_at"`
}

// RecordSubmission stores one row per returned task id.
// The backend creates tasks in URL order, so ids and URLs are paired by
// position; when the counts differ every row gets the joined URL list.
func (s *Store) RecordSubmission(ctx context.Context, sub Submission) error {
	if len(sub.TaskIDs) == 0 {
		return nil
	}

	now := time.Now().UnixNano()
	tracks := joinInts(sub.Tracks)
	joined := strings.Join(sub.URLs, " ")

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, id := range sub.TaskIDs {
		url := joined
		if len(sub.URLs) == len(sub.TaskIDs) {
			url = sub.URLs[i]
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO submissions (task_id, url, quality, tracks, submitted_at) VALUES (?, ?, ?, ?, ?)`,
			id, url, sub.Quality, tracks, now,
		); err != nil {
			return fmt.Errorf("record submission: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// Submissions returns up to limit recorded tasks, newest first.
// A limit of zero or less returns everything.
func (s *Store) Submissions(ctx context.Context, limit int) ([]HistoryEntry, error) {
	query := `SELECT id, task_id, url, quality, tracks, submitted_at FROM submissions ORDER BY submitted_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []historyRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	out := make([]HistoryEntry, len(rows))
	for i, r := range rows {
		e := r.HistoryEntry
		e.SubmittedAt = time.Unix(0, r.SubmittedNS)
		e.Tracks = parseInts(r.TracksRaw)
		out[i] = e
	}
	return out, nil
}

func parseInts(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, p := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}
