package cluster

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	json "github.com/nikkolasg/hexjson"
	"golang.org/x/sync/errgroup"

	"contactpsi/internal/crypto"
	"contactpsi/internal/domain"
	"contactpsi/internal/log"
	"contactpsi/internal/metrics"
	"contactpsi/internal/protocol/psi"
)

var (
	// ErrClosed is returned when submitting to a closed executor.
	ErrClosed = errors.New("executor closed")
	// ErrUnknownOp is returned for a job naming no known circuit.
	ErrUnknownOp = errors.New("unknown op")
	// ErrMissingInput is returned when an op that needs a party input has none.
	ErrMissingInput = errors.New("job has no party input")
)

type task struct {
	job  domain.Job
	done chan domain.Completion
}

// Local executes jobs in-process on a fixed pool of workers.
type Local struct {
	keys     domain.ClusterKeys
	stateKey crypto.StateKey
	log      log.Logger

	tasks chan task
	stop  chan struct{}

	mu     sync.RWMutex
	closed bool

	cancel    context.CancelFunc
	group     *errgroup.Group
	closeOnce sync.Once
}

// LocalOption configures a Local executor.
type LocalOption func(*localConfig)

type localConfig struct {
	workers int
	queue   int
	log     log.Logger
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) LocalOption {
	return func(c *localConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithQueue sets how many jobs may wait for a worker.
func WithQueue(n int) LocalOption {
	return func(c *localConfig) {
		if n >= 0 {
			c.queue = n
		}
	}
}

// WithLocalLogger sets the executor logger.
func WithLocalLogger(l log.Logger) LocalOption {
	return func(c *localConfig) { c.log = l }
}

// NewLocal starts a Local executor holding keys.
func NewLocal(keys domain.ClusterKeys, opts ...LocalOption) (*Local, error) {
	cfg := localConfig{workers: runtime.NumCPU(), queue: 64, log: log.DefaultLogger()}
	for _, o := range opts {
		o(&cfg)
	}
	sk, err := crypto.DeriveStateKey(keys.BoxPriv)
	if err != nil {
		return nil, fmt.Errorf("derive state key: %w", err)
	}
	metrics.Bind()

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	l := &Local{
		keys:     keys,
		stateKey: sk,
		log:      cfg.log.Named("cluster"),
		tasks:    make(chan task, cfg.queue),
		stop:     make(chan struct{}),
		cancel:   cancel,
		group:    g,
	}
	for i := 0; i < cfg.workers; i++ {
		g.Go(func() error {
			l.work(ctx)
			return nil
		})
	}
	return l, nil
}

// Info returns the cluster public keys.
func (l *Local) Info(context.Context) (domain.ClusterInfo, error) {
	return l.keys.Info(), nil
}

// Submit queues job. The returned channel yields one Completion.
func (l *Local) Submit(ctx context.Context, job domain.Job) (<-chan domain.Completion, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrClosed
	}
	t := task{job: job, done: make(chan domain.Completion, 1)}
	select {
	case l.tasks <- t:
		metrics.JobsSubmitted.WithLabelValues(string(job.Op)).Inc()
		l.log.Debugw("job queued", "job", job.ID, "op", job.Op, "session", job.SessionID)
		return t.done, nil
	case <-l.stop:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the workers. Jobs still queued complete with ErrClosed.
func (l *Local) Close() error {
	l.closeOnce.Do(func() {
		close(l.stop)
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()

		l.cancel()
		_ = l.group.Wait()
		for {
			select {
			case t := <-l.tasks:
				t.done <- domain.Completion{Err: ErrClosed}
				close(t.done)
			default:
				l.stateKey.Wipe()
				return
			}
		}
	})
	return nil
}

func (l *Local) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-l.tasks:
			start := time.Now()
			out, err := l.Execute(t.job)
			op := string(t.job.Op)
			metrics.JobLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.JobOutcomes.WithLabelValues(op, "failed").Inc()
				l.log.Warnw("job failed", "job", t.job.ID, "op", op, "err", err)
			} else {
				metrics.JobOutcomes.WithLabelValues(op, "ok").Inc()
			}
			t.done <- domain.Completion{Output: out, Err: err}
			close(t.done)
		}
	}
}

// Execute runs one job synchronously and returns its signed output.
func (l *Local) Execute(job domain.Job) (domain.Output, error) {
	out := domain.Output{JobID: job.ID, Op: job.Op, SessionID: job.SessionID}

	var state domain.SessionState
	if job.Op != domain.OpInitSession {
		if err := l.openState(job.SessionID, job.State, &state); err != nil {
			return domain.Output{}, err
		}
	}

	var (
		next   domain.SessionState
		result any
	)
	switch job.Op {
	case domain.OpInitSession:
		next = psi.InitSession()
	case domain.OpSubmitInitiator:
		var list domain.ContactList
		if err := l.openInput(job, &list); err != nil {
			return domain.Output{}, err
		}
		next, result = psi.SubmitInitiator(state, job.Input.PartyKey, list)
	case domain.OpSubmitAndMatch:
		var list domain.ContactList
		if err := l.openInput(job, &list); err != nil {
			return domain.Output{}, err
		}
		var n int
		next, result, n = psi.SubmitAndMatch(state, job.Input.PartyKey, list)
		metrics.Comparisons.Add(float64(n))
	case domain.OpRevealInitiator:
		// Any payload that opens proves the caller holds the party key; the
		// circuit only hands the view to the key recorded as initiator.
		if _, err := l.openRaw(job); err != nil {
			return domain.Output{}, err
		}
		next, result = state, psi.RevealInitiator(state, job.Input.PartyKey)
	default:
		return domain.Output{}, fmt.Errorf("%w: %q", ErrUnknownOp, job.Op)
	}

	sealedState, err := l.sealState(job.SessionID, next)
	if err != nil {
		return domain.Output{}, err
	}
	out.State = sealedState
	if result != nil {
		sealed, err := l.sealResult(job, result)
		if err != nil {
			return domain.Output{}, err
		}
		out.Result = &sealed
	}
	Sign(l.keys.SignPriv, &out)
	return out, nil
}

func (l *Local) openState(id domain.SessionID, blob []byte, state *domain.SessionState) error {
	pt, err := crypto.OpenState(l.stateKey, blob, crypto.AD(id.String()))
	if err != nil {
		return fmt.Errorf("open session state: %w", err)
	}
	return json.Unmarshal(pt, state)
}

func (l *Local) sealState(id domain.SessionID, state domain.SessionState) ([]byte, error) {
	pt, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return crypto.SealState(l.stateKey, pt, crypto.AD(id.String()))
}

func (l *Local) openRaw(job domain.Job) ([]byte, error) {
	if job.Input == nil {
		return nil, ErrMissingInput
	}
	pt, err := crypto.Open(l.keys.BoxPriv, job.Input.PartyKey, crypto.InfoInput,
		job.Input.Nonce, job.Input.Cipher, crypto.BindAD(job.SessionID, job.Op))
	if err != nil {
		return nil, fmt.Errorf("open party input: %w", err)
	}
	return pt, nil
}

func (l *Local) openInput(job domain.Job, v any) error {
	pt, err := l.openRaw(job)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(pt, v); err != nil {
		return fmt.Errorf("decode party input: %w", err)
	}
	return nil
}

func (l *Local) sealResult(job domain.Job, v any) (domain.Sealed, error) {
	pt, err := json.Marshal(v)
	if err != nil {
		return domain.Sealed{}, err
	}
	nonce, ct, err := crypto.Seal(l.keys.BoxPriv, job.Input.PartyKey, crypto.InfoOutput,
		pt, crypto.BindAD(job.SessionID, job.Op))
	if err != nil {
		return domain.Sealed{}, err
	}
	return domain.Sealed{PartyKey: job.Input.PartyKey, Nonce: nonce, Cipher: ct}, nil
}

var _ domain.Executor = (*Local)(nil)
