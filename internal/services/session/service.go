package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"contactpsi/internal/cluster"
	"contactpsi/internal/domain"
	"contactpsi/internal/log"
	"contactpsi/internal/metrics"
)

// DefaultTimeout bounds how long one step waits for the cluster.
const DefaultTimeout = 30 * time.Second

// Service sequences session steps against a store and an executor.
type Service struct {
	store   domain.SessionStore
	exec    domain.Executor
	clock   clockwork.Clock
	timeout time.Duration
	log     log.Logger
	locks   *keyedLock

	infoMu sync.Mutex
	info   *domain.ClusterInfo
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for timestamps and timeouts.
func WithClock(c clockwork.Clock) Option { return func(s *Service) { s.clock = c } }

// WithTimeout sets how long a step waits for its completion.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l log.Logger) Option { return func(s *Service) { s.log = l } }

// New returns a Service persisting to store and computing on exec.
func New(store domain.SessionStore, exec domain.Executor, opts ...Option) *Service {
	s := &Service{
		store:   store,
		exec:    exec,
		clock:   clockwork.NewRealClock(),
		timeout: DefaultTimeout,
		log:     log.DefaultLogger(),
		locks:   newKeyedLock(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.Named("session")
	return s
}

// Create starts a session owned by initiator.
func (s *Service) Create(ctx context.Context, initiator domain.X25519Public) (domain.SessionMeta, error) {
	if initiator.IsZero() {
		return domain.SessionMeta{}, ErrInvalidKey
	}
	id := domain.SessionID(uuid.NewString())
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return domain.SessionMeta{}, err
	}
	defer unlock()

	out, err := s.run(ctx, domain.Job{Op: domain.OpInitSession, SessionID: id})
	if err != nil {
		return domain.SessionMeta{}, err
	}
	now := s.clock.Now().UTC()
	rec := domain.SessionRecord{
		Meta: domain.SessionMeta{
			ID:        id,
			Initiator: initiator,
			Status:    domain.StatusAwaitingInitiator,
			CreatedAt: now,
			UpdatedAt: now,
		},
		State: out.State,
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return domain.SessionMeta{}, fmt.Errorf("persist session: %w", err)
	}
	metrics.SessionTransitions.WithLabelValues(rec.Meta.Status.String()).Inc()
	s.log.Infow("session_created", "session", id)
	return rec.Meta, nil
}

// SubmitInitiator submits the initiator's sealed list. The sealed
// confirmation reports whether the slot was still free.
func (s *Service) SubmitInitiator(ctx context.Context, id domain.SessionID, contacts domain.Sealed) (domain.Sealed, error) {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return domain.Sealed{}, err
	}
	defer unlock()

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Sealed{}, err
	}
	if contacts.PartyKey != rec.Meta.Initiator {
		return domain.Sealed{}, ErrUnauthorized
	}

	out, err := s.run(ctx, domain.Job{Op: domain.OpSubmitInitiator, SessionID: id, State: rec.State, Input: &contacts})
	if err != nil {
		return domain.Sealed{}, err
	}
	next := rec
	next.State = out.State
	s.advance(&next.Meta, domain.StatusAwaitingResponder)
	if err := s.store.Put(ctx, next); err != nil {
		return domain.Sealed{}, fmt.Errorf("persist session: %w", err)
	}
	s.log.Infow("contacts_submitted", "session", id, "party", domain.PartyInitiator)
	return *out.Result, nil
}

// SubmitResponderAndMatch submits the responder's sealed list and runs the
// intersection. The responder's sealed view is returned directly; the
// initiator's stays in the record until revealed.
func (s *Service) SubmitResponderAndMatch(ctx context.Context, id domain.SessionID, contacts domain.Sealed) (domain.Sealed, error) {
	if contacts.PartyKey.IsZero() {
		return domain.Sealed{}, ErrInvalidKey
	}
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return domain.Sealed{}, err
	}
	defer unlock()

	prev, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Sealed{}, err
	}
	if !prev.Meta.Responder.IsZero() && prev.Meta.Responder != contacts.PartyKey {
		return domain.Sealed{}, ErrUnauthorized
	}

	rec := prev
	// A record left in Computing by an interrupted step is resumed like one
	// still awaiting the responder.
	computing := prev.Meta.Status == domain.StatusAwaitingResponder ||
		prev.Meta.Status == domain.StatusComputing
	if computing {
		rec.Meta.Responder = contacts.PartyKey
		s.advance(&rec.Meta, domain.StatusComputing)
		if err := s.store.Put(ctx, rec); err != nil {
			return domain.Sealed{}, fmt.Errorf("persist session: %w", err)
		}
		s.log.Infow("match_computing", "session", id)
	}

	out, err := s.run(ctx, domain.Job{Op: domain.OpSubmitAndMatch, SessionID: id, State: rec.State, Input: &contacts})
	if err != nil {
		s.restore(ctx, prev, computing)
		return domain.Sealed{}, err
	}
	next := rec
	next.State = out.State
	if computing {
		s.advance(&next.Meta, domain.StatusMatched)
	}
	if err := s.store.Put(ctx, next); err != nil {
		s.restore(ctx, prev, computing)
		return domain.Sealed{}, fmt.Errorf("persist session: %w", err)
	}
	s.log.Infow("match_complete", "session", id)
	return *out.Result, nil
}

// RevealInitiator returns the initiator's sealed view. Before a match the
// view is all zero with a zero count, the same shape as an empty match.
func (s *Service) RevealInitiator(ctx context.Context, id domain.SessionID, proof domain.Sealed) (domain.Sealed, error) {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return domain.Sealed{}, err
	}
	defer unlock()

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Sealed{}, err
	}
	if proof.PartyKey != rec.Meta.Initiator {
		return domain.Sealed{}, ErrUnauthorized
	}

	s.log.Infow("initiator_revealing", "session", id)
	out, err := s.run(ctx, domain.Job{Op: domain.OpRevealInitiator, SessionID: id, State: rec.State, Input: &proof})
	if err != nil {
		return domain.Sealed{}, err
	}
	s.log.Infow("initiator_revealed", "session", id)
	return *out.Result, nil
}

// Status returns the public part of a session.
func (s *Service) Status(ctx context.Context, id domain.SessionID) (domain.SessionMeta, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.SessionMeta{}, err
	}
	return rec.Meta, nil
}

// run submits job and waits for its verified output.
func (s *Service) run(ctx context.Context, job domain.Job) (domain.Output, error) {
	info, err := s.clusterInfo(ctx)
	if err != nil {
		return domain.Output{}, s.fault(job, fmt.Errorf("cluster info: %w", err))
	}

	job.ID = domain.JobID(uuid.NewString())
	done, err := s.exec.Submit(ctx, job)
	if err != nil {
		return domain.Output{}, s.fault(job, err)
	}

	timer := s.clock.NewTimer(s.timeout)
	defer timer.Stop()

	var c domain.Completion
	select {
	case got, ok := <-done:
		if !ok {
			return domain.Output{}, s.fault(job, errors.New("completion channel closed"))
		}
		c = got
	case <-timer.Chan():
		return domain.Output{}, s.fault(job, ErrTimeout)
	case <-ctx.Done():
		return domain.Output{}, s.fault(job, ctx.Err())
	}
	if c.Err != nil {
		return domain.Output{}, s.fault(job, c.Err)
	}

	out := c.Output
	if err := cluster.Verify(info.SigningKey, out); err != nil {
		return domain.Output{}, s.fault(job, err)
	}
	if out.JobID != job.ID || out.Op != job.Op || out.SessionID != job.SessionID {
		return domain.Output{}, s.fault(job, ErrOutputMismatch)
	}
	if job.Input != nil && (out.Result == nil || out.Result.PartyKey != job.Input.PartyKey) {
		return domain.Output{}, s.fault(job, ErrOutputMismatch)
	}
	return out, nil
}

func (s *Service) clusterInfo(ctx context.Context) (domain.ClusterInfo, error) {
	s.infoMu.Lock()
	defer s.infoMu.Unlock()
	if s.info != nil {
		return *s.info, nil
	}
	info, err := s.exec.Info(ctx)
	if err != nil {
		return domain.ClusterInfo{}, err
	}
	s.info = &info
	return info, nil
}

func (s *Service) fault(job domain.Job, err error) error {
	metrics.ComputationFaults.WithLabelValues(string(job.Op)).Inc()
	s.log.Errorw("computation_failed", "session", job.SessionID, "op", job.Op, "job", job.ID, "err", err)
	return &FaultError{Op: job.Op, SessionID: job.SessionID, Err: err}
}

// advance moves meta forward to status; it never moves backwards.
func (s *Service) advance(meta *domain.SessionMeta, status domain.SessionStatus) {
	if status <= meta.Status {
		return
	}
	meta.Status = status
	meta.UpdatedAt = s.clock.Now().UTC()
	metrics.SessionTransitions.WithLabelValues(status.String()).Inc()
}

// restore puts back the record as it was before a failed step. It runs even
// when ctx is already cancelled.
func (s *Service) restore(ctx context.Context, prev domain.SessionRecord, changed bool) {
	if !changed {
		return
	}
	if err := s.store.Put(context.WithoutCancel(ctx), prev); err != nil {
		s.log.Errorw("restore session", "session", prev.Meta.ID, "err", err)
	}
}

var _ domain.SessionService = (*Service)(nil)
