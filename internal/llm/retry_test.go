package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okContent = json.RawMessage(`{"explanation":"ok"}`)

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{{Content: okContent}},
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			responses: []MockResponse{down(), {Content: okContent}},
			wantCalls: 2,
		},
		{
			name:      "all attempts fail",
			responses: []MockResponse{down(), down(), down(), {Content: okContent}},
			wantErr:   true,
			wantCalls: 3,
		},
		{
			name:      "max tokens is not retried",
			responses: []MockResponse{{Err: &ErrMaxTokensExceeded{}}, {Content: okContent}},
			wantErr:   true,
			wantCalls: 1,
		},
		{
			name: "invalid response retried once",
			responses: []MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Content: okContent},
			},
			wantErr:   true,
			wantCalls: 2,
		},
		{
			name: "rate limit honors retry-after",
			responses: []MockResponse{
				{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
				{Content: okContent},
			},
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, retryConfig(), nil)

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, string(okContent), string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(down(), down(), MockResponse{Content: okContent})
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_LogsAttempts(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(down(), MockResponse{Content: okContent})
	p := WithRetry(mock, retryConfig(), zap.New(core))

	_, err := p.Generate(WithPurpose(context.Background(), PurposeExplain), Request{})
	require.NoError(t, err)

	entries := logs.FilterMessage("retrying LLM request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, PurposeExplain, entries[0].ContextMap()["purpose"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["attempt"])
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: okContent})
	p := WithRetry(mock, RetryConfig{}, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig(), nil)
	assert.Equal(t, "mock", p.ModelID())
}
