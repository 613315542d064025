package party

import (
	"errors"
	"fmt"

	json "github.com/nikkolasg/hexjson"

	"contactpsi/internal/contacts"
	"contactpsi/internal/crypto"
	"contactpsi/internal/domain"
)

// ErrNotForUs is returned when a sealed result names another party's key.
var ErrNotForUs = errors.New("sealed result is addressed to another key")

var revealProof = []byte("reveal")

// Client seals inputs for and opens outputs from the cluster.
type Client struct {
	id      domain.Identity
	cluster domain.ClusterInfo
}

// New returns a Client for id talking to the cluster described by info.
func New(id domain.Identity, info domain.ClusterInfo) *Client {
	return &Client{id: id, cluster: info}
}

// Key returns the party key sessions know this client by.
func (c *Client) Key() domain.X25519Public { return c.id.XPub }

// EncodeAndSeal encodes hashes into a ContactList and seals it for op.
// Overflow and other encoding errors surface before anything is encrypted.
func (c *Client) EncodeAndSeal(sid domain.SessionID, op domain.Op, hashes []domain.Hash) (domain.Sealed, error) {
	list, err := contacts.Encode(hashes)
	if err != nil {
		return domain.Sealed{}, err
	}
	return c.SealContacts(sid, op, list)
}

// SealContacts seals an encoded list for op.
func (c *Client) SealContacts(sid domain.SessionID, op domain.Op, list domain.ContactList) (domain.Sealed, error) {
	pt, err := json.Marshal(list)
	if err != nil {
		return domain.Sealed{}, err
	}
	return c.seal(sid, op, pt)
}

// SealRevealProof seals the request for the initiator's stored view.
func (c *Client) SealRevealProof(sid domain.SessionID) (domain.Sealed, error) {
	return c.seal(sid, domain.OpRevealInitiator, revealProof)
}

// OpenConfirmation opens the result of OpSubmitInitiator.
func (c *Client) OpenConfirmation(sid domain.SessionID, s domain.Sealed) (domain.SubmitConfirmation, error) {
	var conf domain.SubmitConfirmation
	err := c.open(sid, domain.OpSubmitInitiator, s, &conf)
	return conf, err
}

// OpenResult opens a match view produced by op, which is either
// OpSubmitAndMatch or OpRevealInitiator.
func (c *Client) OpenResult(sid domain.SessionID, op domain.Op, s domain.Sealed) (domain.MatchResult, error) {
	var res domain.MatchResult
	err := c.open(sid, op, s, &res)
	return res, err
}

func (c *Client) seal(sid domain.SessionID, op domain.Op, pt []byte) (domain.Sealed, error) {
	nonce, ct, err := crypto.Seal(c.id.XPriv, c.cluster.BoxKey, crypto.InfoInput, pt, crypto.BindAD(sid, op))
	if err != nil {
		return domain.Sealed{}, fmt.Errorf("seal %s input: %w", op, err)
	}
	return domain.Sealed{PartyKey: c.id.XPub, Nonce: nonce, Cipher: ct}, nil
}

func (c *Client) open(sid domain.SessionID, op domain.Op, s domain.Sealed, v any) error {
	if s.PartyKey != c.id.XPub {
		return ErrNotForUs
	}
	pt, err := crypto.Open(c.id.XPriv, c.cluster.BoxKey, crypto.InfoOutput, s.Nonce, s.Cipher, crypto.BindAD(sid, op))
	if err != nil {
		return fmt.Errorf("open %s result: %w", op, err)
	}
	return json.Unmarshal(pt, v)
}

// Project maps a view back to the caller's own labels: labels[i] is the
// contact submitted in slot i.
func Project(view domain.MatchResult, labels []string) []string {
	var out []string
	for _, i := range view.Matched() {
		if i < len(labels) {
			out = append(out, labels[i])
		}
	}
	return out
}
