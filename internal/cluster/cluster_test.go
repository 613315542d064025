package cluster_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	json "github.com/nikkolasg/hexjson"
	"github.com/stretchr/testify/require"

	"contactpsi/internal/cluster"
	"contactpsi/internal/contacts"
	"contactpsi/internal/crypto"
	"contactpsi/internal/domain"
	"contactpsi/internal/log"
)

type harness struct {
	t    *testing.T
	keys domain.ClusterKeys
	exec domain.Executor
	sid  domain.SessionID
}

func newLocal(t *testing.T) (*cluster.Local, domain.ClusterKeys) {
	t.Helper()
	keys, err := crypto.GenerateClusterKeys()
	require.NoError(t, err)
	l, err := cluster.NewLocal(keys, cluster.WithWorkers(2), cluster.WithLocalLogger(log.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, keys
}

func (h *harness) run(job domain.Job) domain.Output {
	h.t.Helper()
	job.ID = domain.JobID(uuid.NewString())
	job.SessionID = h.sid
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done, err := h.exec.Submit(ctx, job)
	require.NoError(h.t, err)
	select {
	case c := <-done:
		require.NoError(h.t, c.Err)
		require.NoError(h.t, cluster.Verify(h.keys.SignPub, c.Output))
		require.Equal(h.t, job.ID, c.Output.JobID)
		return c.Output
	case <-ctx.Done():
		h.t.Fatal("job did not complete")
	}
	return domain.Output{}
}

func (h *harness) seal(id domain.Identity, op domain.Op, v any) *domain.Sealed {
	h.t.Helper()
	var pt []byte
	if raw, ok := v.([]byte); ok {
		pt = raw
	} else {
		var err error
		pt, err = json.Marshal(v)
		require.NoError(h.t, err)
	}
	nonce, ct, err := crypto.Seal(id.XPriv, h.keys.BoxPub, crypto.InfoInput, pt, crypto.BindAD(h.sid, op))
	require.NoError(h.t, err)
	return &domain.Sealed{PartyKey: id.XPub, Nonce: nonce, Cipher: ct}
}

func (h *harness) open(id domain.Identity, op domain.Op, s *domain.Sealed, v any) {
	h.t.Helper()
	require.NotNil(h.t, s)
	require.Equal(h.t, id.XPub, s.PartyKey)
	pt, err := crypto.Open(id.XPriv, h.keys.BoxPub, crypto.InfoOutput, s.Nonce, s.Cipher, crypto.BindAD(h.sid, op))
	require.NoError(h.t, err)
	require.NoError(h.t, json.Unmarshal(pt, v))
}

func hashList(t *testing.T, names ...string) domain.ContactList {
	t.Helper()
	hs := make([]domain.Hash, len(names))
	for i, n := range names {
		hs[i] = contacts.HashContact(n)
	}
	l, err := contacts.Encode(hs)
	require.NoError(t, err)
	return l
}

// runSession drives one session to a revealed match and returns the final
// sealed state.
func runSession(t *testing.T, h *harness) []byte {
	alice, err := crypto.GenerateIdentity()
	require.NoError(t, err)
	bob, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	out := h.run(domain.Job{Op: domain.OpInitSession})
	require.Nil(t, out.Result)
	state := out.State

	out = h.run(domain.Job{Op: domain.OpSubmitInitiator, State: state,
		Input: h.seal(alice, domain.OpSubmitInitiator, hashList(t, "a", "b", "c"))})
	var conf domain.SubmitConfirmation
	h.open(alice, domain.OpSubmitInitiator, out.Result, &conf)
	require.Equal(t, domain.SubmitConfirmation{Accepted: 1, Party: domain.PartyInitiator}, conf)
	state = out.State

	out = h.run(domain.Job{Op: domain.OpSubmitAndMatch, State: state,
		Input: h.seal(bob, domain.OpSubmitAndMatch, hashList(t, "b", "c", "d"))})
	var view domain.MatchResult
	h.open(bob, domain.OpSubmitAndMatch, out.Result, &view)
	require.EqualValues(t, 2, view.MatchCount)
	require.Equal(t, []int{0, 1}, view.Matched())
	state = out.State

	out = h.run(domain.Job{Op: domain.OpRevealInitiator, State: state,
		Input: h.seal(alice, domain.OpRevealInitiator, []byte("reveal"))})
	var reveal domain.MatchResult
	h.open(alice, domain.OpRevealInitiator, out.Result, &reveal)
	require.EqualValues(t, 2, reveal.MatchCount)
	require.Equal(t, []int{1, 2}, reveal.Matched())
	return out.State
}

func TestLocalRunsFullSession(t *testing.T) {
	l, keys := newLocal(t)
	runSession(t, &harness{t: t, keys: keys, exec: l, sid: "s-local"})
}

func TestRevealIsBoundToInitiatorKey(t *testing.T) {
	l, keys := newLocal(t)
	h := &harness{t: t, keys: keys, exec: l, sid: "s-bound"}
	state := runSession(t, h)

	eve, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	// A valid reveal from a key that never submitted yields the zero view.
	out := h.run(domain.Job{Op: domain.OpRevealInitiator, State: state,
		Input: h.seal(eve, domain.OpRevealInitiator, []byte("reveal"))})
	var view domain.MatchResult
	h.open(eve, domain.OpRevealInitiator, out.Result, &view)
	require.Equal(t, domain.MatchResult{}, view)
	require.Empty(t, view.Matched())

	// Nor can a late submission take over the initiator slot.
	out = h.run(domain.Job{Op: domain.OpSubmitInitiator, State: state,
		Input: h.seal(eve, domain.OpSubmitInitiator, hashList(t, "b"))})
	var conf domain.SubmitConfirmation
	h.open(eve, domain.OpSubmitInitiator, out.Result, &conf)
	require.EqualValues(t, 0, conf.Accepted)

	out = h.run(domain.Job{Op: domain.OpRevealInitiator, State: out.State,
		Input: h.seal(eve, domain.OpRevealInitiator, []byte("reveal"))})
	h.open(eve, domain.OpRevealInitiator, out.Result, &view)
	require.Equal(t, domain.MatchResult{}, view)
}

func TestRemoteRunsFullSession(t *testing.T) {
	l, keys := newLocal(t)
	srv := httptest.NewServer(cluster.NewServer(context.Background(), l, log.NewNop()).Handler())
	defer srv.Close()

	remote := cluster.NewRemote(srv.URL, srv.Client())
	info, err := remote.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, keys.Info(), info)

	runSession(t, &harness{t: t, keys: keys, exec: remote, sid: "s-remote"})
}

func TestRemoteReportsJobFailure(t *testing.T) {
	l, _ := newLocal(t)
	srv := httptest.NewServer(cluster.NewServer(context.Background(), l, log.NewNop()).Handler())
	defer srv.Close()

	remote := cluster.NewRemote(srv.URL, nil)
	done, err := remote.Submit(context.Background(), domain.Job{ID: "j1", Op: "bogus", SessionID: "s"})
	require.NoError(t, err)
	c := <-done
	require.ErrorIs(t, c.Err, cluster.ErrRemote)
}

func TestExecuteRejectsBadInputs(t *testing.T) {
	l, keys := newLocal(t)
	h := &harness{t: t, keys: keys, exec: l, sid: "s1"}
	state := h.run(domain.Job{Op: domain.OpInitSession}).State
	alice, err := crypto.GenerateIdentity()
	require.NoError(t, err)

	_, err = l.Execute(domain.Job{ID: "j", Op: domain.OpSubmitInitiator, SessionID: "s1", State: state})
	require.ErrorIs(t, err, cluster.ErrMissingInput)

	_, err = l.Execute(domain.Job{ID: "j", Op: "nope", SessionID: "s1", State: state})
	require.ErrorIs(t, err, cluster.ErrUnknownOp)

	// A record sealed for one session does not open under another id.
	_, err = l.Execute(domain.Job{ID: "j", Op: domain.OpRevealInitiator, SessionID: "s2", State: state,
		Input: h.seal(alice, domain.OpRevealInitiator, []byte("reveal"))})
	require.ErrorIs(t, err, crypto.ErrOpen)

	// An input sealed for a different op is refused.
	_, err = l.Execute(domain.Job{ID: "j", Op: domain.OpSubmitInitiator, SessionID: "s1", State: state,
		Input: h.seal(alice, domain.OpSubmitAndMatch, hashList(t, "x"))})
	require.ErrorIs(t, err, crypto.ErrOpen)
}

func TestVerifyDetectsTampering(t *testing.T) {
	l, keys := newLocal(t)
	out, err := l.Execute(domain.Job{ID: "j", Op: domain.OpInitSession, SessionID: "s"})
	require.NoError(t, err)
	require.NoError(t, cluster.Verify(keys.SignPub, out))

	bad := out
	bad.State = append([]byte(nil), out.State...)
	bad.State[0] ^= 1
	require.ErrorIs(t, cluster.Verify(keys.SignPub, bad), cluster.ErrBadSignature)

	bad = out
	bad.SessionID = "other"
	require.ErrorIs(t, cluster.Verify(keys.SignPub, bad), cluster.ErrBadSignature)

	other, err := crypto.GenerateClusterKeys()
	require.NoError(t, err)
	require.ErrorIs(t, cluster.Verify(other.SignPub, out), cluster.ErrBadSignature)
}

func TestLocalSubmitAfterClose(t *testing.T) {
	l, _ := newLocal(t)
	require.NoError(t, l.Close())
	_, err := l.Submit(context.Background(), domain.Job{ID: "j", Op: domain.OpInitSession})
	require.ErrorIs(t, err, cluster.ErrClosed)
}

func tryPostJob(base string, job domain.Job) (int, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return 0, err
	}
	resp, err := http.Post(base+"/jobs", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func postJob(t *testing.T, base string, job domain.Job) int {
	t.Helper()
	code, err := tryPostJob(base, job)
	require.NoError(t, err)
	return code
}

func TestServerClaimsJobIDOnce(t *testing.T) {
	l, _ := newLocal(t)
	srv := httptest.NewServer(cluster.NewServer(context.Background(), l, log.NewNop()).Handler())
	defer srv.Close()

	const n = 8
	job := domain.Job{ID: "same", Op: domain.OpInitSession, SessionID: "s"}
	codes := make([]int, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i], errs[i] = tryPostJob(srv.URL, job)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	var accepted, conflict int
	for _, c := range codes {
		switch c {
		case http.StatusAccepted:
			accepted++
		case http.StatusConflict:
			conflict++
		}
	}
	require.Equal(t, 1, accepted)
	require.Equal(t, n-1, conflict)
}

func TestServerDropsUnwatchedJobs(t *testing.T) {
	l, _ := newLocal(t)
	clock := clockwork.NewFakeClock()
	srv := httptest.NewServer(cluster.NewServer(context.Background(), l, log.NewNop(),
		cluster.WithServerClock(clock), cluster.WithPendingTTL(time.Minute)).Handler())
	defer srv.Close()

	require.Equal(t, http.StatusAccepted, postJob(t, srv.URL, domain.Job{ID: "old", Op: domain.OpInitSession, SessionID: "s"}))
	clock.Advance(2 * time.Minute)
	require.Equal(t, http.StatusAccepted, postJob(t, srv.URL, domain.Job{ID: "new", Op: domain.OpInitSession, SessionID: "s"}))

	resp, err := http.Get(srv.URL + "/jobs/old/watch")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The expired id can be claimed again; the fresh one is still held.
	require.Equal(t, http.StatusAccepted, postJob(t, srv.URL, domain.Job{ID: "old", Op: domain.OpInitSession, SessionID: "s"}))
	require.Equal(t, http.StatusConflict, postJob(t, srv.URL, domain.Job{ID: "new", Op: domain.OpInitSession, SessionID: "s"}))
}
