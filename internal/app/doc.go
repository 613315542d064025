// Package app wires application dependencies for the binaries.
//
// It loads Config from <home>/config.toml, then builds the logger, the
// session store, the executor (in-process or a remote cluster) and the
// high-level services, exposing them via the Wire struct for commands to use.
package app
