package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names for the event log.
const (
	quizEventsTable   = "quiz_events"
	answerEventsTable = "answer_events"
	batchEventsTable  = "batch_events"
	resultEventsTable = "result_events"
	llmEventsTable    = "llm_request_events"
)

// eventColumns returns the columns every event table starts with: the
// auto-increment id, the global sequence number and the append timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	cols := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(cols, extra...)
}

// eventTable builds a table with the id primary key and indexes on
// sequence, timestamp and any additional named columns.
func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	byName := make(map[string]*schema.Column, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}

	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	for _, col := range append([]string{"timestamp"}, indexed...) {
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    fmt.Sprintf("%s_%s", name, col),
			Columns: []*schema.Column{byName[col]},
		})
	}
	return t
}

var (
	quizEventColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "bank_version", Type: field.TypeString},
		&schema.Column{Name: "question_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "message", Type: field.TypeString, Default: ""},
	)

	answerEventColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeInt},
		&schema.Column{Name: "axis", Type: field.TypeString},
		&schema.Column{Name: "specificity", Type: field.TypeInt},
		&schema.Column{Name: "position", Type: field.TypeInt},
		&schema.Column{Name: "value", Type: field.TypeInt},
	)

	batchEventColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "batch_number", Type: field.TypeInt},
		&schema.Column{Name: "specificity", Type: field.TypeInt},
		&schema.Column{Name: "quadrant", Type: field.TypeString},
		&schema.Column{Name: "economic", Type: field.TypeFloat64},
		&schema.Column{Name: "social", Type: field.TypeFloat64},
		&schema.Column{Name: "question_ids", Type: field.TypeString, Size: 1 << 16},
		&schema.Column{Name: "exhausted", Type: field.TypeBool, Default: false},
	)

	resultEventColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "economic", Type: field.TypeFloat64},
		&schema.Column{Name: "social", Type: field.TypeFloat64},
		&schema.Column{Name: "quadrant", Type: field.TypeString},
		&schema.Column{Name: "ideology", Type: field.TypeString},
		&schema.Column{Name: "question_count", Type: field.TypeInt},
		&schema.Column{Name: "bank_version", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "history", Type: field.TypeString, Size: 1 << 16},
	)

	llmEventColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
	)

	// Tables lists every table managed by auto-migration.
	Tables = []*schema.Table{
		eventTable(quizEventsTable, quizEventColumns, "session_id"),
		eventTable(answerEventsTable, answerEventColumns, "session_id"),
		eventTable(batchEventsTable, batchEventColumns, "session_id"),
		eventTable(resultEventsTable, resultEventColumns, "session_id"),
		eventTable(llmEventsTable, llmEventColumns, "purpose"),
	}
)

// migrate creates or updates the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, Tables...)
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
