package core

import "fmt"

// MalformedInputError reports schema-invalid application or transaction
// data. It is unrecoverable: the request aborts and the full message is
// surfaced to the caller.
type MalformedInputError struct {
	Field  string
	Detail string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s: %s", e.Field, e.Detail)
}

// MemoryUnavailableError reports a vector-store query or upsert failure.
// During analyze it is recovered locally: logged, substituted with an empty
// hit list, and the pipeline continues.
type MemoryUnavailableError struct {
	Collection string
	Op         string
	Err        error
}

func (e *MemoryUnavailableError) Error() string {
	return fmt.Sprintf("memory %s on %s: %v", e.Op, e.Collection, e.Err)
}

func (e *MemoryUnavailableError) Unwrap() error { return e.Err }

// ReasoningUnavailableError reports an oracle failure. The pipeline recovers
// by feeding a literal error string to the parser, which applies its
// fail-closed defaults.
type ReasoningUnavailableError struct {
	Err error
}

func (e *ReasoningUnavailableError) Error() string {
	return fmt.Sprintf("reasoning unavailable: %v", e.Err)
}

func (e *ReasoningUnavailableError) Unwrap() error { return e.Err }

// PartialWriteError reports that the feedback loop's fraud-memory write
// failed after the risk-memory write succeeded. The record is partially
// written; it is surfaced, never retried automatically.
type PartialWriteError struct {
	ApplicationID string
	Written       string
	Failed        string
	Err           error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial memory write for %s: %s written, %s failed: %v",
		e.ApplicationID, e.Written, e.Failed, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
