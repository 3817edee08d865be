// Package errs collects the sentinel errors returned across the cramplan
// module. Call sites wrap these with fmt.Errorf("...: %w", ...) to attach
// the offending value; callers compare against the sentinel with
// errors.Is.
package errs

import "errors"

var (
	// ErrInvalidSubstitutionBase is returned when a substitution read
	// feature's reference or read base is outside {A,C,G,T,N}.
	ErrInvalidSubstitutionBase = errors.New("invalid substitution base")

	// ErrUnknownTagType is returned when a tag key's type character is
	// outside the closed set the per-tag encoding chooser understands.
	ErrUnknownTagType = errors.New("unknown tag type")

	// ErrCompressorProbeFailed is returned when any one candidate
	// compressor fails on a buffer, when the buffer to probe is empty, or
	// when a planner is configured with no candidates.
	ErrCompressorProbeFailed = errors.New("compressor probe failed")

	// ErrMalformedFAILine is returned when a .fai line does not match the
	// expected five-column, tab-delimited layout.
	ErrMalformedFAILine = errors.New("malformed .fai line")

	// ErrDuplicateContig is returned when a .fai file lists the same
	// contig name more than once.
	ErrDuplicateContig = errors.New("duplicate contig in .fai index")

	// ErrContigNotFound is returned by a .fai index lookup for a contig
	// that was never inserted.
	ErrContigNotFound = errors.New("contig not found in .fai index")
)
