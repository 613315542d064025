// Package cluster runs session circuits on behalf of the orchestrator.
//
// The cluster holds the only copy of the keys that can read session records
// and party inputs. A job names one circuit, carries the sealed record and
// an optional sealed party input, and completes with a signed Output whose
// result is sealed to the submitting party alone.
//
// Three pieces live here:
//
//   - Local, an in-process executor backed by a worker pool
//   - Server, which exposes any Executor over HTTP with a websocket per job
//     for the completion
//   - Remote, an Executor that talks to a Server
//
// Verify checks an output signature against the cluster signing key.
package cluster
