package dtos

// FindingRole describes what a detected primitive is used for.
type FindingRole string

const (
	FindingRoleEncryption FindingRole = "encryption"
	FindingRoleHash       FindingRole = "hash"
	FindingRoleSignature  FindingRole = "signature"
	FindingRoleKDF        FindingRole = "kdf"
	FindingRoleRandom     FindingRole = "random"
)

// well-known parameter keys the extractor may attach to a finding.
const (
	ParamKeySize     = "keySize"
	ParamMode        = "mode"
	ParamCurve       = "curve"
	ParamIV          = "iv"
	ParamNonce       = "nonce"
	ParamKeyMaterial = "keyMaterial"
)

type CodeLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Finding is one detected use of a cryptographic primitive, produced by
// the (external) finding extractor. Immutable once part of an assessment.
type Finding struct {
	AlgorithmID string         `json:"algorithmId" validate:"required"`
	Role        FindingRole    `json:"role" validate:"required,oneof=encryption hash signature kdf random"`
	Parameters  map[string]any `json:"parameters"`
	Location    CodeLocation   `json:"location"`
	Confidence  float64        `json:"confidence" validate:"gte=0,lte=1"`
}

// KeySize returns the keySize parameter if the extractor reported one.
// JSON decoding yields float64 for numbers, so both are accepted.
func (f Finding) KeySize() (int, bool) {
	v, ok := f.Parameters[ParamKeySize]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

// StringParam returns a string-typed parameter, "" if absent or not a string.
func (f Finding) StringParam(key string) string {
	v, ok := f.Parameters[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
