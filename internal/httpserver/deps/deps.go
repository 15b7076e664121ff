package deps

import (
	"context"
	"time"

	"github.com/linkforge/linkforge/internal/logger"
	"github.com/linkforge/linkforge/internal/scheduler"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	// AppCtx is the process lifetime context. Workers started from
	// HTTP handlers must outlive the request, so they are bound to
	// this context rather than the request's.
	AppCtx context.Context

	// Registry owns the active campaign workers.
	Registry *scheduler.Registry
}
