// Package logging provides leveled logging on top of the standard
// library logger.
//
// The level is read once from the environment: DEBUG=true forces debug
// output, otherwise LOG_LEVEL selects one of debug, info, warn or
// error (default info).
package logging
