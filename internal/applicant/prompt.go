package applicant

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Prompter asks the operator for one line of input.
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
}

// LinePrompter writes labels to w and reads newline-terminated answers from r.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter builds a prompter over an input stream and an output stream.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Prompt prints label and returns the next line without its line terminator.
// A final unterminated line is returned as-is; io.EOF is only reported when
// nothing was read.
func (p *LinePrompter) Prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(p.w, label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prompts for f until the answer satisfies f.Rule. Rejected answers print
// the violated rule's message to out and are never returned. Only a prompter
// failure ends the loop early.
func Ask(ctx context.Context, p Prompter, out io.Writer, f Field) (string, error) {
	logger := logutil.GetLogger(ctx)
	for attempt := 1; ; attempt++ {
		candidate, err := p.Prompt(ctx, f.Label)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Key, err)
		}
		value, err := f.Rule.Validate(candidate)
		if err == nil {
			return value, nil
		}
		var violation *RuleViolation
		if !errors.As(err, &violation) {
			return "", err
		}
		logger.Debug("field rejected",
			zap.String("field", f.Key),
			zap.String("rule", violation.Rule),
			zap.Int("attempt", attempt),
		)
		fmt.Fprintf(out, "Error: %s\n", violation.Message)
	}
}
