// Package party is the client side of a discovery session.
//
// A Client holds one party's identity and the cluster's public keys. It
// encodes and seals contact lists for submission and opens the results the
// cluster seals back. Nothing it produces can be read by the other party.
package party
