// Command psicluster runs a contactpsi computation cluster over HTTP.
//
// HTTP API
//
//	POST /jobs
//	    Queue a Job (op, session id, sealed record, sealed party input).
//	    Replies 202 with {"id": ...}.
//
//	GET /jobs/{id}/watch
//	    Websocket. The server sends exactly one message, the job's signed
//	    output or the error that failed it, then closes.
//
//	GET /info
//	    The cluster's public box and signing keys.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - Cluster keys are read from the store directory, or created there on
//     first start, encrypted under the configured cluster passphrase.
//   - The cluster never stores session records; it only sees sealed
//     records in jobs and returns resealed ones.
//   - The default listen address is 127.0.0.1:8090.
package main
