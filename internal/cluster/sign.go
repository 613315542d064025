package cluster

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"hash"

	"contactpsi/internal/crypto"
	"contactpsi/internal/domain"
)

// ErrBadSignature is returned when an output does not verify under the
// cluster signing key.
var ErrBadSignature = errors.New("output signature does not verify")

// Digest is the message the cluster signs for an output. It covers the job
// id, op, session id, sealed state and sealed result.
func Digest(out domain.Output) []byte {
	h := sha256.New()
	field(h, []byte("contactpsi/v1/output"))
	field(h, []byte(out.JobID))
	field(h, []byte(out.Op))
	field(h, []byte(out.SessionID))
	field(h, out.State)
	if out.Result != nil {
		field(h, out.Result.PartyKey.Slice())
		field(h, out.Result.Nonce)
		field(h, out.Result.Cipher)
	} else {
		field(h, nil)
	}
	return h.Sum(nil)
}

func field(h hash.Hash, b []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(b)))
	h.Write(n[:])
	h.Write(b)
}

// Sign sets the output signature.
func Sign(priv domain.Ed25519Private, out *domain.Output) {
	out.Signature = crypto.SignEd25519(priv, Digest(*out))
}

// Verify checks the output signature.
func Verify(pub domain.Ed25519Public, out domain.Output) error {
	if len(out.Signature) == 0 || !crypto.VerifyEd25519(pub, Digest(out), out.Signature) {
		return ErrBadSignature
	}
	return nil
}
