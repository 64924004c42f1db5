package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studyflow/matrixd/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

const taskColumns = `id, title, description, quadrant, subject, interleaving, completed, points, created_at, completed_at,
	pomo_work_minutes, pomo_break_minutes, pomo_sessions,
	sr_enabled, sr_interval_days, sr_last_reviewed, sr_next_review, sr_repetitions,
	rec_enabled, rec_interval, rec_custom_days, rec_next_occurrence, rec_last_completed`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

// LoadTasks reads the whole collection ordered by creation time. A task with
// an unreadable created_at is skipped rather than failing the load.
func (r *SQLiteRepository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taskRows := make([]taskRow, 0)
	for rows.Next() {
		row, scanErr := scanTaskRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		taskRows = append(taskRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cardsByTask, err := r.loadAllCards(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Task, 0, len(taskRows))
	for _, row := range taskRows {
		task, convErr := taskFromRow(row, cardsByTask[row.ID])
		if convErr != nil {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

// ReplaceTasks swaps the stored collection for the given one in a single
// transaction. Last write wins; there is no concurrent writer.
func (r *SQLiteRepository) ReplaceTasks(ctx context.Context, tasks []model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recall_cards`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}
	for _, task := range tasks {
		if err := insertTask(ctx, tx, task); err != nil {
			return fmt.Errorf("replace task %s: %w", task.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insertTask(ctx, tx, in); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	taskRow, err := scanTaskRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	cards, err := r.loadCards(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return taskFromRow(taskRow, cards)
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, in.ID)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	if err := insertTask(ctx, tx, in); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func insertTask(ctx context.Context, tx *sql.Tx, in model.Task) error {
	row := rowFromTask(in)
	_, err := tx.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Title, row.Description, row.Quadrant, row.Subject, row.Interleaving, row.Completed,
		row.Points, row.CreatedAt, row.CompletedAt,
		row.PomoWorkMinutes, row.PomoBreakMinutes, row.PomoSessions,
		row.SREnabled, row.SRIntervalDays, row.SRLastReviewed, row.SRNextReview, row.SRRepetitions,
		row.RecEnabled, row.RecInterval, row.RecCustomDays, row.RecNextOccurrence, row.RecLastCompleted,
	)
	if err != nil {
		return err
	}
	for _, card := range cardRowsFromTask(in) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recall_cards (task_id, position, question, answer, last_performance)
			VALUES (?, ?, ?, ?, ?)`,
			card.TaskID, card.Position, card.Question, card.Answer, card.LastPerformance,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) loadCards(ctx context.Context, taskID string) ([]cardRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT task_id, position, question, answer, last_performance
		FROM recall_cards WHERE task_id = ? ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCards(rows)
}

func (r *SQLiteRepository) loadAllCards(ctx context.Context) (map[string][]cardRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT task_id, position, question, answer, last_performance
		FROM recall_cards ORDER BY task_id ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards, err := collectCards(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]cardRow)
	for _, card := range cards {
		out[card.TaskID] = append(out[card.TaskID], card)
	}
	for _, group := range out {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Position < group[j].Position })
	}
	return out, nil
}

func collectCards(rows *sql.Rows) ([]cardRow, error) {
	out := make([]cardRow, 0)
	for rows.Next() {
		var card cardRow
		if err := rows.Scan(&card.TaskID, &card.Position, &card.Question, &card.Answer, &card.LastPerformance); err != nil {
			return nil, err
		}
		out = append(out, card)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(s scanner) (taskRow, error) {
	var row taskRow
	err := s.Scan(
		&row.ID, &row.Title, &row.Description, &row.Quadrant, &row.Subject, &row.Interleaving, &row.Completed,
		&row.Points, &row.CreatedAt, &row.CompletedAt,
		&row.PomoWorkMinutes, &row.PomoBreakMinutes, &row.PomoSessions,
		&row.SREnabled, &row.SRIntervalDays, &row.SRLastReviewed, &row.SRNextReview, &row.SRRepetitions,
		&row.RecEnabled, &row.RecInterval, &row.RecCustomDays, &row.RecNextOccurrence, &row.RecLastCompleted,
	)
	if err != nil {
		return taskRow{}, err
	}
	return row, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func mustTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(sqliteTimeLayout), Valid: true}
}

func parseRequiredTime(raw string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("storage: parse time %q: %w", raw, err)
	}
	return t, nil
}

// parseLenientTime turns an unreadable timestamp into nil. Due and
// recurrence checks treat nil as "not scheduled", so one corrupt field fails
// closed for that task only.
func parseLenientTime(raw sql.NullString) *time.Time {
	if !raw.Valid {
		return nil
	}
	t, err := time.Parse(sqliteTimeLayout, raw.String)
	if err != nil {
		return nil
	}
	return &t
}
