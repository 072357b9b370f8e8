package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Quiz lifecycle actions.
const (
	ActionStart  = "start"
	ActionFinish = "finish"
	ActionAbort  = "abort"
	ActionError  = "error"
)

// QuizEventData captures a survey lifecycle transition.
type QuizEventData struct {
	SessionID     string
	Action        string
	BankVersion   string
	QuestionCount int
	Message       string
}

// AnswerEventData captures a single recorded answer.
type AnswerEventData struct {
	SessionID   string
	QuestionID  int
	Axis        string
	Specificity int
	Position    int
	Value       int
}

// BatchEventData captures an adaptive batch selection.
type BatchEventData struct {
	SessionID   string
	BatchNumber int
	Specificity int
	Quadrant    string
	Economic    float64
	Social      float64
	QuestionIDs []int
	Exhausted   bool
}

// SnapshotPoint is one point on a recorded score trajectory.
type SnapshotPoint struct {
	Economic       float64 `json:"economic"`
	Social         float64 `json:"social"`
	QuestionNumber int     `json:"question_number"`
}

// ResultEventData captures a finished survey.
type ResultEventData struct {
	SessionID     string
	Economic      float64
	Social        float64
	Quadrant      string
	Ideology      string
	QuestionCount int
	BankVersion   string
	History       []SnapshotPoint
}

// ResultRecord is a persisted result event.
type ResultRecord struct {
	ResultEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// BatchRecord is a persisted batch event.
type BatchRecord struct {
	BatchEventData
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a persisted LLM request event.
type LLMEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendQuizEvent records a survey lifecycle transition.
	AppendQuizEvent(ctx context.Context, data QuizEventData) error

	// AppendAnswer records an answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendBatch records an adaptive batch selection.
	AppendBatch(ctx context.Context, data BatchEventData) error

	// AppendResult records a finished survey.
	AppendResult(ctx context.Context, data ResultEventData) error

	// QueryResults returns result events, newest first.
	QueryResults(ctx context.Context, opts QueryOpts) ([]ResultRecord, error)

	// QueryBatches returns the batch events of a session in order.
	QueryBatches(ctx context.Context, sessionID string) ([]BatchRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}
