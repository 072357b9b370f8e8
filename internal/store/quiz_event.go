package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	err := r.appendEvent(ctx, quizEventsTable,
		[]string{"session_id", "action", "bank_version", "question_count", "message"},
		data.SessionID, data.Action, data.BankVersion, data.QuestionCount, data.Message,
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	err := r.appendEvent(ctx, answerEventsTable,
		[]string{"session_id", "question_id", "axis", "specificity", "position", "value"},
		data.SessionID, data.QuestionID, data.Axis, data.Specificity, data.Position, data.Value,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendBatch(ctx context.Context, data BatchEventData) error {
	ids, err := json.Marshal(data.QuestionIDs)
	if err != nil {
		return fmt.Errorf("encode question ids: %w", err)
	}
	err = r.appendEvent(ctx, batchEventsTable,
		[]string{"session_id", "batch_number", "specificity", "quadrant", "economic", "social", "question_ids", "exhausted"},
		data.SessionID, data.BatchNumber, data.Specificity, data.Quadrant, data.Economic, data.Social, string(ids), data.Exhausted,
	)
	if err != nil {
		return fmt.Errorf("save batch event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendResult(ctx context.Context, data ResultEventData) error {
	history, err := json.Marshal(data.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	err = r.appendEvent(ctx, resultEventsTable,
		[]string{"session_id", "economic", "social", "quadrant", "ideology", "question_count", "bank_version", "history"},
		data.SessionID, data.Economic, data.Social, data.Quadrant, data.Ideology, data.QuestionCount, data.BankVersion, string(history),
	)
	if err != nil {
		return fmt.Errorf("save result event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryResults(ctx context.Context, opts QueryOpts) ([]ResultRecord, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "session_id", "economic", "social",
			"quadrant", "ideology", "question_count", "bank_version", "history").
		From(entsql.Table(resultEventsTable))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		var (
			rec     ResultRecord
			history string
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
			&rec.Economic, &rec.Social, &rec.Quadrant, &rec.Ideology, &rec.QuestionCount, &rec.BankVersion, &history); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if history != "" {
			if err := json.Unmarshal([]byte(history), &rec.History); err != nil {
				return nil, fmt.Errorf("decode history of %s: %w", rec.SessionID, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return records, nil
}

func (r *eventRepo) QueryBatches(ctx context.Context, sessionID string) ([]BatchRecord, error) {
	query, args := builder().
		Select("sequence", "timestamp", "session_id", "batch_number", "specificity",
			"quadrant", "economic", "social", "question_ids", "exhausted").
		From(entsql.Table(batchEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var records []BatchRecord
	for rows.Next() {
		var (
			rec BatchRecord
			ids string
			ts  time.Time
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.BatchNumber, &rec.Specificity,
			&rec.Quadrant, &rec.Economic, &rec.Social, &ids, &rec.Exhausted); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		rec.Timestamp = ts
		if err := json.Unmarshal([]byte(ids), &rec.QuestionIDs); err != nil {
			return nil, fmt.Errorf("decode question ids: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	return records, nil
}
