package cmusearch

import "github.com/cockroachdb/errors"

// Error taxonomy (spec §7). All four are recoverable: the engine never
// terminates the host process, and a failed init_engine/init_engine_from_cache
// call leaves any previously-installed index untouched.
var (
	// ErrInputMalformed signals that a serialized input (an encoded index
	// string) could not be parsed, or a required field is missing.
	ErrInputMalformed = errors.New("cmusearch: input malformed")

	// ErrVersionMismatch signals that an encoded index carries a schema
	// version this build does not recognize. The host should rebuild from
	// sources.
	ErrVersionMismatch = errors.New("cmusearch: encoded index schema version mismatch")

	// ErrNotInitialized signals that search or count was requested before
	// the engine was built or restored.
	ErrNotInitialized = errors.New("cmusearch: engine not initialized")

	// ErrInvalidConfig signals a negative field weight, or (in strict
	// mode) a source id mismatch between Sources and Config.
	ErrInvalidConfig = errors.New("cmusearch: invalid configuration")
)
