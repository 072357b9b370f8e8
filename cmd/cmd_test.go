package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/compass/internal/store"
)

// execute runs the root command with isolated config, state and data
// directories and returns what it wrote.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	for k, v := range map[string]string{
		"XDG_CONFIG_HOME": filepath.Join(dir, "config"),
		"XDG_STATE_HOME":  filepath.Join(dir, "state"),
		"XDG_DATA_HOME":   filepath.Join(dir, "data"),
	} {
		t.Setenv(k, v)
	}
	for _, k := range []string{
		"COMPASS_DB", "COMPASS_LOG_FILE", "COMPASS_LOG_LEVEL", "COMPASS_LLM_PROVIDER",
		"COMPASS_LLM_ANTHROPIC_API_KEY", "COMPASS_LLM_OPENAI_API_KEY",
		"COMPASS_LLM_GEMINI_API_KEY", "COMPASS_LLM_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestResolve(t *testing.T) {
	out, _, err := execute(t, "resolve", "--econ", "-50", "--social", "-25")
	require.NoError(t, err)
	assert.Contains(t, out, "Social Democracy")
	assert.Contains(t, out, "Libertarian Left")
	assert.Contains(t, out, "Sweden")
}

func TestResolveOutOfRange(t *testing.T) {
	_, _, err := execute(t, "resolve", "--econ", "140", "--social", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--econ")
}

func TestBankList(t *testing.T) {
	out, _, err := execute(t, "bank", "list", "--axis", "social", "--specificity", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Statement")
	assert.Contains(t, out, "bank v1.0.0")
}

func TestBankListUnknownAxis(t *testing.T) {
	_, _, err := execute(t, "bank", "list", "--axis", "cultural", "--specificity", "0")
	require.Error(t, err)
}

func TestBankExplainRequiresProvider(t *testing.T) {
	db := filepath.Join(t.TempDir(), "compass.db")
	_, _, err := execute(t, "bank", "explain", "--db", db, "--llm-provider", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no LLM provider")
}

func TestBankExplainReportsFailures(t *testing.T) {
	db := filepath.Join(t.TempDir(), "compass.db")
	t.Setenv("COMPASS_LLM_RETRY_MAX_ATTEMPTS", "1")

	// The mock provider has no canned answers, so every request fails and
	// the bank is printed unchanged.
	out, errOut, err := execute(t, "bank", "explain", "--db", db, "--llm-provider", "mock")
	require.NoError(t, err)
	assert.Contains(t, out, "version: v1.0.0")
	assert.Contains(t, errOut, "0 generated, 32 skipped, 10 failed")

	_, _, err = execute(t, "llm", "stats", "--db", db, "--llm-provider", "")
	require.NoError(t, err)
}

func TestHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "compass.db")
	s, err := store.Open(db)
	require.NoError(t, err)
	repo := s.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendResult(ctx, store.ResultEventData{
		SessionID: "a", Economic: -55.5, Social: -30, Quadrant: "LibLeft",
		Ideology: "Social Democracy", QuestionCount: 40, BankVersion: "v1.0.0",
	}))
	require.NoError(t, repo.AppendResult(ctx, store.ResultEventData{
		SessionID: "b", Economic: 5, Social: 5, Quadrant: "AuthRight",
		Ideology: "Centrism", QuestionCount: 40, BankVersion: "v0.1.0",
	}))
	require.NoError(t, s.Close())

	out, _, err := execute(t, "history", "--db", db, "--llm-provider", "", "-n", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Social Democracy")
	assert.Contains(t, out, "-55.50")
	assert.Contains(t, out, "v0.1.0 *")
	assert.Contains(t, out, "not comparable")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--llm-provider", "")
	require.NoError(t, err)
	assert.Contains(t, out, "compass (devel)")
}
