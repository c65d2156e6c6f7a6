package dtos

import (
	"time"

	"github.com/google/uuid"
)

// CertificateLevel is ordered: bronze < silver < gold < platinum.
type CertificateLevel string

const (
	CertificateLevelBronze   CertificateLevel = "bronze"
	CertificateLevelSilver   CertificateLevel = "silver"
	CertificateLevelGold     CertificateLevel = "gold"
	CertificateLevelPlatinum CertificateLevel = "platinum"
)

func (l CertificateLevel) Rank() int {
	switch l {
	case CertificateLevelBronze:
		return 1
	case CertificateLevelSilver:
		return 2
	case CertificateLevelGold:
		return 3
	case CertificateLevelPlatinum:
		return 4
	}
	return 0
}

type CertificateDTO struct {
	ID           uuid.UUID        `json:"id"`
	AssessmentID uuid.UUID        `json:"assessmentId"`
	Level        CertificateLevel `json:"level"`
	IssuedAt     time.Time        `json:"issuedAt"`
	ExpiresAt    time.Time        `json:"expiresAt"`
	Revoked      bool             `json:"revoked"`
	ContentHash  string           `json:"contentHash"`
}

// VerificationReason explains a verification result. Exactly one reason
// is set on every result - verification is total, it never fails with
// an error for unknown or malformed certificate ids.
type VerificationReason string

const (
	VerificationReasonValid    VerificationReason = "valid"
	VerificationReasonNotFound VerificationReason = "notFound"
	VerificationReasonExpired  VerificationReason = "expired"
	VerificationReasonRevoked  VerificationReason = "revoked"
)

type VerificationResult struct {
	Valid       bool               `json:"valid"`
	Reason      VerificationReason `json:"reason"`
	Certificate *CertificateDTO    `json:"certificate,omitempty"`
}
