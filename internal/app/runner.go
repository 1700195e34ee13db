package app

import (
	"context"

	"github.com/spf13/pflag"
)

// IRunner represents a runnable command in the application layer.
type IRunner interface {
	Name() string
	Desc() string
	Init(f *pflag.FlagSet)
	PreRun(ctx context.Context) error
	Run(ctx context.Context) error
	PostRun(ctx context.Context) error
}

// Execute drives a runner through its PreRun, Run and PostRun phases.
func Execute(ctx context.Context, r IRunner) error {
	if err := r.PreRun(ctx); err != nil {
		return err
	}
	if err := r.Run(ctx); err != nil {
		return err
	}
	return r.PostRun(ctx)
}
