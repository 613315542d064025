package types

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// IsZero reports whether the key is unset.
func (p X25519Public) IsZero() bool { return p == X25519Public{} }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is an Ed25519 signing private key.
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// ClusterKeys is the key material held by the computation cluster. The box
// pair encrypts party inputs and outputs and seeds the record key; the
// signing pair authenticates every job output.
type ClusterKeys struct {
	BoxPriv  X25519Private  `json:"box_priv"`
	BoxPub   X25519Public   `json:"box_pub"`
	SignPriv Ed25519Private `json:"sign_priv"`
	SignPub  Ed25519Public  `json:"sign_pub"`
}

// Info returns the public half of the cluster keys.
func (k ClusterKeys) Info() ClusterInfo {
	return ClusterInfo{BoxKey: k.BoxPub, SigningKey: k.SignPub}
}

// ClusterInfo is what parties and the orchestrator need to know about the
// cluster: where to seal inputs and how to check output signatures.
type ClusterInfo struct {
	BoxKey     X25519Public  `json:"box_key"`
	SigningKey Ed25519Public `json:"signing_key"`
}

// Identity holds a party's long-term keys. XPub is how the party is known
// inside a session; inputs are sealed with XPriv and outputs opened with it.
type Identity struct {
	XPub   X25519Public   `json:"xpub"`
	XPriv  X25519Private  `json:"xpriv"`
	EdPub  Ed25519Public  `json:"edpub"`
	EdPriv Ed25519Private `json:"edpriv"`
}
