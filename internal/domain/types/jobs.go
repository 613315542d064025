package types

// Op names a unit of work the cluster can execute.
type Op string

const (
	OpInitSession     Op = "init_session"
	OpSubmitInitiator Op = "submit_initiator"
	OpSubmitAndMatch  Op = "submit_and_match"
	OpRevealInitiator Op = "reveal_initiator"
)

// Sealed is a payload encrypted between one party and the cluster. PartyKey
// is the party side of the exchange: the sender for inputs, the recipient
// for outputs.
type Sealed struct {
	PartyKey X25519Public `json:"party_key"`
	Nonce    []byte       `json:"nonce"`
	Cipher   []byte       `json:"cipher"`
}

// Job is one operation submitted to the cluster.
type Job struct {
	ID        JobID     `json:"id"`
	Op        Op        `json:"op"`
	SessionID SessionID `json:"session_id"`
	State     []byte    `json:"state,omitempty"`
	Input     *Sealed   `json:"input,omitempty"`
}

// Output is the signed result of a job.
type Output struct {
	JobID     JobID     `json:"job_id"`
	Op        Op        `json:"op"`
	SessionID SessionID `json:"session_id"`
	State     []byte    `json:"state,omitempty"`
	Result    *Sealed   `json:"result,omitempty"`
	Signature []byte    `json:"signature"`
}

// Completion is delivered once per submitted job: either a signed output or
// the reason the cluster failed it.
type Completion struct {
	Output Output
	Err    error
}
