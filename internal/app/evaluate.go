package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xxxsen/alloyctl/internal/alloy"
	"github.com/xxxsen/alloyctl/internal/applicant"
	"github.com/xxxsen/alloyctl/internal/config"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// ErrSubmissionFailed is returned by EvaluateCommand.Run when the evaluation
// never produced a usable response.
var ErrSubmissionFailed = errors.New("submission failed")

// EvaluateCommand collects one applicant, submits it and reports the decision.
type EvaluateCommand struct {
	envFile string

	in  io.Reader
	out io.Writer

	client  *alloy.Client
	outcome *alloy.Outcome
}

func NewEvaluateCommand() *EvaluateCommand {
	return newEvaluateCommand(os.Stdin, os.Stdout)
}

func newEvaluateCommand(in io.Reader, out io.Writer) *EvaluateCommand {
	return &EvaluateCommand{in: in, out: out}
}

func (c *EvaluateCommand) Name() string { return "evaluate" }

func (c *EvaluateCommand) Desc() string {
	return "Collect applicant details and submit them for identity verification"
}

func (c *EvaluateCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.envFile, EnvFileFlag, "", "dotenv file holding WORKFLOW_TOKEN and WORKFLOW_SECRET")
}

func (c *EvaluateCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.envFile)
	if err != nil {
		return reportConfigError(c.out, err)
	}
	client, err := alloy.New(*cfg)
	if err != nil {
		return reportConfigError(c.out, err)
	}
	c.client = client
	logutil.GetLogger(ctx).Info("starting evaluate",
		zap.String("workflow", client.Workflow()),
	)
	return nil
}

func (c *EvaluateCommand) Run(ctx context.Context) error {
	if c.client == nil {
		return errors.New("evaluate: client not initialised")
	}
	var stages stageTracker

	fmt.Fprintln(c.out, "Welcome to Alloy API Integration")
	if err := stages.advance(ctx, StageCollecting); err != nil {
		return err
	}
	rec, err := applicant.NewCollector(applicant.NewLinePrompter(c.in, c.out), c.out).Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect applicant: %w", err)
	}

	if err := stages.advance(ctx, StageSubmitting); err != nil {
		return err
	}
	resp, submitErr := c.client.Submit(ctx, rec)

	if err := stages.advance(ctx, StageClassifying); err != nil {
		return err
	}
	var outcome alloy.Outcome
	if submitErr != nil {
		o, ok := alloy.ClassifyError(submitErr)
		if !ok {
			return submitErr
		}
		outcome = o
	} else {
		outcome = alloy.Classify(resp)
	}
	c.outcome = &outcome

	if err := stages.advance(ctx, StageReporting); err != nil {
		return err
	}
	if err := WriteReport(c.out, resp, outcome); err != nil {
		return err
	}

	logutil.GetLogger(ctx).Info("evaluation finished",
		zap.String("outcome", outcome.Kind.String()),
		zap.String("reason", outcome.Reason.String()),
		zap.Int("status", outcome.StatusCode),
	)
	if outcome.Kind == alloy.KindTransportError {
		return fmt.Errorf("%w: %s", ErrSubmissionFailed, outcome.Detail)
	}
	return nil
}

func (c *EvaluateCommand) PostRun(ctx context.Context) error { return nil }

// Outcome returns the classification produced by Run, or nil before Run completes.
func (c *EvaluateCommand) Outcome() *alloy.Outcome {
	return c.outcome
}

func reportConfigError(out io.Writer, err error) error {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(out, "Error: %s\n", cfgErr.Error())
	}
	return err
}

func init() {
	RegisterRunner("evaluate", func() IRunner { return NewEvaluateCommand() })
}
