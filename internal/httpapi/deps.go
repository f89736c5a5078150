package httpapi

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/config"
	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/events"
	"ukjobs-engine/internal/store"
)

type Deps struct {
	DB  *store.DB
	Hub *events.Hub
	Log zerolog.Logger

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	RunStatus *atomic.Value // stores httpapi.RunStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Run entrypoint (inject for testability)
	RunOnce func(ctx context.Context, date string) domain.RunResult
}

// RunStatus is what /runs/status reports between and during runs.
type RunStatus struct {
	Running    bool              `json:"running"`
	LastResult *domain.RunResult `json:"last_result,omitempty"`
}
