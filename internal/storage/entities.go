package storage

import (
	"database/sql"

	"github.com/studyflow/matrixd/internal/model"
)

// taskRow is the flat tasks-table shape. Optional sub-records collapse into
// nullable column groups; presence is signalled by the group's enabled or
// count column being non-null.
type taskRow struct {
	ID           string
	Title        string
	Description  string
	Quadrant     string
	Subject      string
	Interleaving int
	Completed    int
	Points       sql.NullInt64
	CreatedAt    string
	CompletedAt  sql.NullString

	PomoWorkMinutes  sql.NullInt64
	PomoBreakMinutes sql.NullInt64
	PomoSessions     sql.NullInt64

	SREnabled      sql.NullInt64
	SRIntervalDays sql.NullInt64
	SRLastReviewed sql.NullString
	SRNextReview   sql.NullString
	SRRepetitions  sql.NullInt64

	RecEnabled        sql.NullInt64
	RecInterval       sql.NullString
	RecCustomDays     sql.NullInt64
	RecNextOccurrence sql.NullString
	RecLastCompleted  sql.NullString
}

type cardRow struct {
	TaskID          string
	Position        int
	Question        string
	Answer          string
	LastPerformance string
}

func rowFromTask(in model.Task) taskRow {
	out := taskRow{
		ID:           in.ID,
		Title:        in.Title,
		Description:  in.Description,
		Quadrant:     string(in.Quadrant),
		Subject:      in.Subject,
		Interleaving: boolInt(in.Interleaving),
		Completed:    boolInt(in.Completed),
		CreatedAt:    mustTime(in.CreatedAt),
		CompletedAt:  nullTime(in.CompletedAt),
	}
	if in.Points != nil {
		out.Points = sql.NullInt64{Int64: int64(*in.Points), Valid: true}
	}
	if in.Pomodoro != nil {
		out.PomoWorkMinutes = sql.NullInt64{Int64: int64(in.Pomodoro.WorkDuration), Valid: true}
		out.PomoBreakMinutes = sql.NullInt64{Int64: int64(in.Pomodoro.BreakDuration), Valid: true}
		out.PomoSessions = sql.NullInt64{Int64: int64(in.Pomodoro.Sessions), Valid: true}
	}
	if in.SpacedRepetition != nil {
		out.SREnabled = sql.NullInt64{Int64: int64(boolInt(in.SpacedRepetition.Enabled)), Valid: true}
		out.SRIntervalDays = sql.NullInt64{Int64: int64(in.SpacedRepetition.IntervalDays), Valid: true}
		out.SRLastReviewed = nullTime(in.SpacedRepetition.LastReviewed)
		out.SRNextReview = nullTime(in.SpacedRepetition.NextReview)
		out.SRRepetitions = sql.NullInt64{Int64: int64(in.SpacedRepetition.RepetitionCount), Valid: true}
	}
	if in.Recurrence != nil {
		out.RecEnabled = sql.NullInt64{Int64: int64(boolInt(in.Recurrence.Enabled)), Valid: true}
		out.RecInterval = sql.NullString{String: string(in.Recurrence.Interval), Valid: true}
		out.RecCustomDays = sql.NullInt64{Int64: int64(in.Recurrence.CustomDays), Valid: true}
		out.RecNextOccurrence = nullTime(in.Recurrence.NextOccurrence)
		out.RecLastCompleted = nullTime(in.Recurrence.LastCompleted)
	}
	return out
}

// taskFromRow rebuilds the domain task. Unparseable optional timestamps load
// as nil so one damaged record only fails closed for due checks instead of
// poisoning the whole collection.
func taskFromRow(row taskRow, cards []cardRow) (model.Task, error) {
	createdAt, err := parseRequiredTime(row.CreatedAt)
	if err != nil {
		return model.Task{}, err
	}
	out := model.Task{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Quadrant:     model.Quadrant(row.Quadrant),
		Subject:      row.Subject,
		Interleaving: row.Interleaving == 1,
		Completed:    row.Completed == 1,
		CreatedAt:    createdAt,
		CompletedAt:  parseLenientTime(row.CompletedAt),
	}
	if row.Points.Valid {
		points := int(row.Points.Int64)
		out.Points = &points
	}
	if row.PomoSessions.Valid {
		out.Pomodoro = &model.PomodoroSettings{
			WorkDuration:  int(row.PomoWorkMinutes.Int64),
			BreakDuration: int(row.PomoBreakMinutes.Int64),
			Sessions:      int(row.PomoSessions.Int64),
		}
	}
	if row.SREnabled.Valid {
		out.SpacedRepetition = &model.SpacedRepetition{
			Enabled:         row.SREnabled.Int64 == 1,
			IntervalDays:    int(row.SRIntervalDays.Int64),
			LastReviewed:    parseLenientTime(row.SRLastReviewed),
			NextReview:      parseLenientTime(row.SRNextReview),
			RepetitionCount: int(row.SRRepetitions.Int64),
		}
	}
	if row.RecEnabled.Valid {
		out.Recurrence = &model.Recurrence{
			Enabled:        row.RecEnabled.Int64 == 1,
			Interval:       model.RecurrenceInterval(row.RecInterval.String),
			CustomDays:     int(row.RecCustomDays.Int64),
			NextOccurrence: parseLenientTime(row.RecNextOccurrence),
			LastCompleted:  parseLenientTime(row.RecLastCompleted),
		}
	}
	for _, card := range cards {
		out.ActiveRecall = append(out.ActiveRecall, model.RecallCard{
			Question:        card.Question,
			Answer:          card.Answer,
			LastPerformance: model.RecallPerformance(card.LastPerformance),
		})
	}
	return out, nil
}

func cardRowsFromTask(in model.Task) []cardRow {
	out := make([]cardRow, 0, len(in.ActiveRecall))
	for i, card := range in.ActiveRecall {
		out = append(out, cardRow{
			TaskID:          in.ID,
			Position:        i,
			Question:        card.Question,
			Answer:          card.Answer,
			LastPerformance: string(card.LastPerformance),
		})
	}
	return out
}
