/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package logtest provides a log.FieldLogger that records entries in memory,
// so tests can check what was logged (e.g. cache evictions).
package logtest
