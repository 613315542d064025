package interfaces

import (
	"context"

	domaintypes "contactpsi/internal/domain/types"
)

// Executor runs jobs on the computation cluster. Submit returns once the job
// is queued; the completion arrives later on the returned channel, which
// receives exactly one value and is then closed.
type Executor interface {
	Submit(ctx context.Context, job domaintypes.Job) (<-chan domaintypes.Completion, error)
	Info(ctx context.Context) (domaintypes.ClusterInfo, error)
	Close() error
}
