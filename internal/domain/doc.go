// Package domain defines the data models and contracts shared across
// contactpsi: contact lists, the session record and its public metadata,
// cluster jobs, and the store/executor/service interfaces. It holds plain
// types and interfaces only.
package domain
