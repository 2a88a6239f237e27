// Package logging provides the logging interface used by fraccalc and its
// zerolog implementation. Components depend on Logger so tests can pass a
// silent logger.
package logging
