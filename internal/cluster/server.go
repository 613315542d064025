package cluster

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	json "github.com/nikkolasg/hexjson"

	"contactpsi/internal/domain"
	"contactpsi/internal/log"
	"contactpsi/internal/metrics"
)

// maxJobBody bounds the size of a submitted job.
const maxJobBody = 1 << 20

// DefaultPendingTTL is how long a queued job waits to be watched before its
// completion is dropped.
const DefaultPendingTTL = 10 * time.Minute

// Server exposes an Executor over HTTP.
//
//	POST /jobs              queue a job, reply with its id
//	GET  /jobs/{id}/watch   websocket carrying the one completion
//	GET  /info              cluster public keys
//	GET  /metrics           prometheus metrics
type Server struct {
	exec  domain.Executor
	log   log.Logger
	clock clockwork.Clock
	ttl   time.Duration

	// base outlives requests so queued jobs survive the POST returning.
	base context.Context

	mu      sync.Mutex
	pending map[domain.JobID]*pendingJob
}

// pendingJob is a job id that has been claimed. done is nil until the
// executor has accepted the job.
type pendingJob struct {
	done  <-chan domain.Completion
	added time.Time
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerClock sets the clock used to expire unwatched jobs.
func WithServerClock(c clockwork.Clock) ServerOption {
	return func(s *Server) { s.clock = c }
}

// WithPendingTTL sets how long an unwatched completion is kept.
func WithPendingTTL(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// NewServer returns a Server for exec. Jobs are submitted under ctx.
func NewServer(ctx context.Context, exec domain.Executor, l log.Logger, opts ...ServerOption) *Server {
	s := &Server{
		exec:    exec,
		log:     l.Named("cluster-http"),
		clock:   clockwork.NewRealClock(),
		ttl:     DefaultPendingTTL,
		base:    ctx,
		pending: make(map[domain.JobID]*pendingJob),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/info", s.handleInfo)
	r.Handle("/metrics", metrics.Handler())
	r.Post("/jobs", s.handleSubmit)
	r.Get("/jobs/{id}/watch", s.handleWatch)
	return r
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.exec.Info(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJobBody)).Decode(&job); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if job.ID == "" {
		http.Error(w, "missing job id", http.StatusBadRequest)
		return
	}

	if !s.claim(job.ID) {
		http.Error(w, "duplicate job id", http.StatusConflict)
		return
	}

	done, err := s.exec.Submit(s.base, job)
	if err != nil {
		s.mu.Lock()
		delete(s.pending, job.ID)
		s.mu.Unlock()
		status := http.StatusInternalServerError
		if errors.Is(err, ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	s.mu.Lock()
	if p, ok := s.pending[job.ID]; ok {
		p.done = done
	}
	s.mu.Unlock()

	s.log.Debugw("job accepted", "job", job.ID, "op", job.Op)
	writeJSON(w, http.StatusAccepted, submitResponse{ID: job.ID})
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := domain.JobID(chi.URLParam(r, "id"))
	s.mu.Lock()
	s.expire()
	var done <-chan domain.Completion
	if p, ok := s.pending[id]; ok && p.done != nil {
		done = p.done
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if done == nil {
		http.Error(w, "unknown job", http.StatusNotFound)
		return
	}

	ws, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warnw("websocket accept", "job", id, "err", err)
		return
	}
	defer ws.CloseNow()

	ctx := r.Context()
	var msg completionMessage
	select {
	case c, open := <-done:
		switch {
		case !open:
			msg.Error = "completion channel closed"
		case c.Err != nil:
			msg.Error = c.Err.Error()
		default:
			out := c.Output
			msg.Output = &out
		}
	case <-ctx.Done():
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Errorw("encode completion", "job", id, "err", err)
		return
	}
	wctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := ws.Write(wctx, websocket.MessageText, data); err != nil {
		s.log.Warnw("websocket write", "job", id, "err", err)
		return
	}
	ws.Close(websocket.StatusNormalClosure, "done")
}

// claim reserves id for a new job. It fails when id is already in use.
func (s *Server) claim(id domain.JobID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expire()
	if _, dup := s.pending[id]; dup {
		return false
	}
	s.pending[id] = &pendingJob{added: s.clock.Now()}
	return true
}

// expire drops completions nobody watched within the ttl. Callers hold mu.
func (s *Server) expire() {
	now := s.clock.Now()
	for id, p := range s.pending {
		if p.done != nil && now.Sub(p.added) > s.ttl {
			delete(s.pending, id)
			s.log.Debugw("dropping unwatched job", "job", id)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
