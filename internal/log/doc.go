// Package log wraps a zap sugared logger behind a small leveled interface.
//
// Services take a Logger at construction time and name it after themselves,
// so every line carries its origin ("session", "cluster", ...). Structured
// fields are passed as alternating key/value pairs to the *w methods.
package log
