// Package explain drafts "why is this asked?" help text for bank questions
// with an LLM. It never mutates a bank: Fill returns a new one for review.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/llm"
)

// Config controls explanation generation.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Concurrency caps in-flight LLM requests.
	Concurrency int

	// Examples is how many existing explanations are shown as style hints.
	Examples int

	// Overwrite regenerates questions that already have an explanation.
	Overwrite bool
}

// DefaultConfig returns the default generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
		Concurrency: 4,
		Examples:    3,
	}
}

// ErrEmptyExplanation is returned when the model answers with blank text.
var ErrEmptyExplanation = errors.New("empty explanation")

// Service generates explanations.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
}

// Explain generates an explanation for one question. examples are shown
// to the model as style hints.
func (s *Service) Explain(ctx context.Context, q bank.Question, examples []bank.Question) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	req := llm.UserRequest(systemPrompt, userMessage(q, examples), ExplanationSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("explain question %d: %w", q.ID, err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse explanation for question %d: %w", q.ID, err)
	}
	text := strings.Join(strings.Fields(out.Explanation), " ")
	if text == "" {
		return "", fmt.Errorf("question %d: %w", q.ID, ErrEmptyExplanation)
	}
	return text, nil
}

// Report summarizes a Fill run.
type Report struct {
	Bank      *bank.Bank
	Generated []int         // question ids that received a new explanation
	Skipped   []int         // already explained and not overwritten
	Failed    map[int]error // per-question failures; those questions are unchanged
}

// Fill generates explanations for the questions in b that lack one (or
// all of them when Overwrite is set) and returns a copy of b carrying the
// results. Individual failures are reported, not fatal; only cancellation
// aborts the run.
func (s *Service) Fill(ctx context.Context, b *bank.Bank) (*Report, error) {
	questions := b.All()
	report := &Report{Failed: make(map[int]error)}

	var (
		mu        sync.Mutex
		generated = make(map[int]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for _, q := range questions {
		if q.Explanation != "" && !s.cfg.Overwrite {
			report.Skipped = append(report.Skipped, q.ID)
			continue
		}
		examples := styleExamples(b, q, s.cfg.Examples)

		g.Go(func() error {
			text, err := s.Explain(gctx, q, examples)
			if gctx.Err() != nil {
				return gctx.Err()
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Warn("explanation failed", zap.Int("question_id", q.ID), zap.Error(err))
				report.Failed[q.ID] = err
				return nil
			}
			generated[q.ID] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, q := range questions {
		if text, ok := generated[q.ID]; ok {
			questions[i].Explanation = text
			report.Generated = append(report.Generated, q.ID)
		}
	}

	nb, err := bank.New(b.Version(), questions)
	if err != nil {
		return nil, fmt.Errorf("rebuild bank: %w", err)
	}
	report.Bank = nb
	return report, nil
}
