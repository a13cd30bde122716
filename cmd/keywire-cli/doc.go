// Package main provides the entry point for keywire-cli.
//
// The CLI talks the KeyWire line protocol for one-shot commands and
// interactive sessions:
//
//	keywire-cli get name
//	keywire-cli set greeting hello world
//	keywire-cli delete name
//	keywire-cli ping
//	keywire-cli stats
//	keywire-cli repl
//
// The target server comes from --server or KEYWIRE_SERVER.
package main
