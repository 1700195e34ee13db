package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xxxsen/alloyctl/internal/alloy"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// ParametersCommand prints the attributes the evaluation workflow expects.
type ParametersCommand struct {
	envFile string

	out    io.Writer
	client *alloy.Client
}

func NewParametersCommand() *ParametersCommand {
	return &ParametersCommand{out: os.Stdout}
}

func (c *ParametersCommand) Name() string { return "parameters" }

func (c *ParametersCommand) Desc() string {
	return "List the required and optional attributes of the evaluation endpoint"
}

func (c *ParametersCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.envFile, EnvFileFlag, "", "dotenv file holding WORKFLOW_TOKEN and WORKFLOW_SECRET")
}

func (c *ParametersCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.envFile)
	if err != nil {
		return reportConfigError(c.out, err)
	}
	client, err := alloy.New(*cfg)
	if err != nil {
		return reportConfigError(c.out, err)
	}
	c.client = client
	logutil.GetLogger(ctx).Info("starting parameters lookup")
	return nil
}

func (c *ParametersCommand) Run(ctx context.Context) error {
	if c.client == nil {
		return errors.New("parameters: client not initialised")
	}
	params, err := c.client.Parameters(ctx)
	if err != nil {
		var te *alloy.TransportError
		if errors.As(err, &te) && te.Err == nil {
			fmt.Fprintf(c.out, "Error fetching parameters: %d %s\n", te.StatusCode, strings.TrimSpace(te.Body))
		} else {
			fmt.Fprintf(c.out, "Error fetching parameters: %v\n", err)
		}
		return err
	}
	fmt.Fprintf(c.out, "Required Fields: [%s]\n", strings.Join(params.RequiredNames(), ", "))
	fmt.Fprintf(c.out, "Optional Fields: [%s]\n", strings.Join(params.OptionalNames(), ", "))

	logutil.GetLogger(ctx).Info("parameters fetched",
		zap.Int("required", len(params.Required)),
		zap.Int("optional", len(params.Optional)),
	)
	return nil
}

func (c *ParametersCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("parameters", func() IRunner { return NewParametersCommand() })
}
