package quiz

import "fmt"

// Default survey shape: five batches of eight.
const (
	DefaultBatchSize      = 8
	DefaultTotalQuestions = 40
)

// Config controls the shape of a survey run.
type Config struct {
	BatchSize      int
	TotalQuestions int
}

// DefaultConfig returns the standard 8 × 5 configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:      DefaultBatchSize,
		TotalQuestions: DefaultTotalQuestions,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.TotalQuestions < c.BatchSize {
		return fmt.Errorf("total questions (%d) must be at least the batch size (%d)", c.TotalQuestions, c.BatchSize)
	}
	return nil
}

// Batches returns the number of batches a full run would contain.
func (c Config) Batches() int {
	return (c.TotalQuestions + c.BatchSize - 1) / c.BatchSize
}
