package dtos

type VulnCategory string

const (
	VulnCategoryDeprecatedAlgorithm VulnCategory = "deprecatedAlgorithm"
	VulnCategoryWeakKeySize         VulnCategory = "weakKeySize"
	VulnCategoryWeakPadding         VulnCategory = "weakPadding"
	VulnCategoryNonceReuse          VulnCategory = "nonceReuse"
	VulnCategoryHardcodedKey        VulnCategory = "hardcodedKey"
	VulnCategoryOther               VulnCategory = "other"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Vulnerability is produced by the vulnerability analyzer only.
// FindingRef indexes into the owning assessment's findings snapshot.
type Vulnerability struct {
	ID             string       `json:"id"`
	FindingRef     int          `json:"findingRef"`
	Category       VulnCategory `json:"category"`
	Severity       Severity     `json:"severity"`
	Description    string       `json:"description"`
	Recommendation string       `json:"recommendation,omitempty"`
}
