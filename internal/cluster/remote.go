package cluster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coder/websocket"
	json "github.com/nikkolasg/hexjson"

	"contactpsi/internal/domain"
)

// ErrRemote wraps a failure reported by a remote cluster.
var ErrRemote = errors.New("cluster reported failure")

// readLimit bounds one completion message.
const readLimit = 1 << 20

// Remote is an Executor backed by a cluster Server.
type Remote struct {
	Base string
	HTTP *http.Client
}

// NewRemote returns a Remote talking to base, e.g. http://127.0.0.1:8090.
func NewRemote(base string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{Base: strings.TrimRight(base, "/"), HTTP: client}
}

// Info fetches the cluster public keys.
func (c *Remote) Info(ctx context.Context) (domain.ClusterInfo, error) {
	var out domain.ClusterInfo
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/info", nil)
	if err != nil {
		return out, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return out, fmt.Errorf("cluster get /info: %s", resp.Status)
	}
	return out, json.NewDecoder(resp.Body).Decode(&out)
}

// Submit posts job and opens the completion websocket before returning, so
// a completion can never be missed.
func (c *Remote) Submit(ctx context.Context, job domain.Job) (<-chan domain.Completion, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(job); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/jobs", buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("cluster post /jobs: %s", resp.Status)
	}

	ws, _, err := websocket.Dial(ctx, c.Base+"/jobs/"+url.PathEscape(job.ID.String())+"/watch",
		&websocket.DialOptions{HTTPClient: c.HTTP})
	if err != nil {
		return nil, fmt.Errorf("watch job %s: %w", job.ID, err)
	}
	ws.SetReadLimit(readLimit)

	done := make(chan domain.Completion, 1)
	go func() {
		defer close(done)
		defer ws.CloseNow()
		done <- c.await(ctx, ws)
	}()
	return done, nil
}

func (c *Remote) await(ctx context.Context, ws *websocket.Conn) domain.Completion {
	_, data, err := ws.Read(ctx)
	if err != nil {
		return domain.Completion{Err: fmt.Errorf("read completion: %w", err)}
	}
	var msg completionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return domain.Completion{Err: fmt.Errorf("decode completion: %w", err)}
	}
	if msg.Error != "" || msg.Output == nil {
		return domain.Completion{Err: fmt.Errorf("%w: %s", ErrRemote, msg.Error)}
	}
	ws.Close(websocket.StatusNormalClosure, "")
	return domain.Completion{Output: *msg.Output}
}

// Close is a no-op; connections are per job.
func (c *Remote) Close() error { return nil }

var _ domain.Executor = (*Remote)(nil)
