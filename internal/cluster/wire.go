package cluster

import "contactpsi/internal/domain"

// submitResponse acknowledges a queued job.
type submitResponse struct {
	ID domain.JobID `json:"id"`
}

// completionMessage is the single websocket message sent per job.
type completionMessage struct {
	Output *domain.Output `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}
