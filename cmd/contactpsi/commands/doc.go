// Package commands defines the contactpsi CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init         Create the local identity and a default config
//   - fingerprint  Print the identity fingerprint
//   - hash         Print the contact hashes for one or more contacts
//   - create       Start a session as the initiator
//   - submit       Submit the initiator's contacts
//   - match        Submit the responder's contacts and run the match
//   - reveal       Retrieve the initiator's matches
//   - status       Show a session's public status
//
// # Implementation
//
// The root command loads <home>/config.toml, applies flag overrides and
// builds the dependency graph (stores, executor, services) the first time a
// subcommand asks for it. Contact files hold one contact per line; blank
// lines and lines starting with '#' are skipped.
package commands
