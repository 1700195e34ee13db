package app

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Stage is one step of the evaluate pipeline. Stages only move forward.
type Stage int

const (
	StageIdle Stage = iota
	StageCollecting
	StageSubmitting
	StageClassifying
	StageReporting
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageCollecting:
		return "collecting"
	case StageSubmitting:
		return "submitting"
	case StageClassifying:
		return "classifying"
	case StageReporting:
		return "reporting"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

type stageTracker struct {
	current Stage
}

// advance moves to next, which must directly follow the current stage.
func (t *stageTracker) advance(ctx context.Context, next Stage) error {
	if next != t.current+1 {
		return fmt.Errorf("invalid stage transition %s -> %s", t.current, next)
	}
	logutil.GetLogger(ctx).Debug("pipeline stage",
		zap.String("from", t.current.String()),
		zap.String("to", next.String()),
	)
	t.current = next
	return nil
}
