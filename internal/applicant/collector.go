package applicant

import (
	"context"
	"fmt"
	"io"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Collector asks for every applicant field in order and builds a Record.
type Collector struct {
	prompter Prompter
	out      io.Writer
}

// NewCollector creates a collector that reads answers through p and writes
// feedback to out.
func NewCollector(p Prompter, out io.Writer) *Collector {
	return &Collector{prompter: p, out: out}
}

// Collect runs the interactive intake. Nothing is returned until every field
// has a valid answer.
func (c *Collector) Collect(ctx context.Context) (*Record, error) {
	logger := logutil.GetLogger(ctx)
	fmt.Fprintln(c.out, "Enter applicant details:")

	values := make(map[string]string, len(fields))
	for _, f := range fields {
		v, err := Ask(ctx, c.prompter, c.out, f)
		if err != nil {
			return nil, err
		}
		values[f.Key] = v
		logger.Debug("field accepted", zap.String("field", f.Key))
	}
	rec, err := NewRecord(values)
	if err != nil {
		return nil, fmt.Errorf("build applicant record: %w", err)
	}
	logger.Info("applicant collected", zap.Int("field_count", len(values)))
	return rec, nil
}
