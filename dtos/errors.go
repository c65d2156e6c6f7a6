package dtos

import "github.com/pkg/errors"

var (
	// ErrInvalidAssessmentState signals caller misuse: mutating a
	// completed assessment, issuing for a non-accepted assessment or
	// double issuance without revocation.
	ErrInvalidAssessmentState = errors.New("invalid assessment state")

	// ErrNotFound signals an absent assessment or certificate.
	ErrNotFound = errors.New("not found")

	// ErrParse signals a malformed request at the extractor boundary.
	// The assessment is never created in that case.
	ErrParse = errors.New("could not parse request")
)
