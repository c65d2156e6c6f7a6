package dtos

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentState string

const (
	AssessmentStateRequested    AssessmentState = "requested"
	AssessmentStateInAssessment AssessmentState = "inAssessment"
	AssessmentStateCompleted    AssessmentState = "completed"
)

// AssessmentOutcome is only set once the assessment reaches the
// completed state.
type AssessmentOutcome string

const (
	AssessmentOutcomeAccepted AssessmentOutcome = "accepted"
	AssessmentOutcomeRejected AssessmentOutcome = "rejected"
)

// ComplianceResult scores a single standard. A standard without any
// applicable checks never produces a ComplianceResult - absence of
// evidence is not failure.
type ComplianceResult struct {
	StandardID       string  `json:"standardId"`
	ApplicableChecks int     `json:"applicableChecks"`
	PassedChecks     int     `json:"passedChecks"`
	Score            float64 `json:"score"`
}

// TestResults is the opaque pass-through blob from the external test
// harness. Compliance checks may reference entries by name.
type TestResults map[string]any

// Passed reports whether a named test is present and passed.
func (t TestResults) Passed(name string) (bool, bool) {
	v, ok := t[name]
	if !ok {
		return false, false
	}
	passed, ok := v.(bool)
	if !ok {
		return false, false
	}
	return passed, true
}

// Float returns a numeric entry, accepting both int and float64.
func (t TestResults) Float(name string) (float64, bool) {
	v, ok := t[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

type AssessmentRequest struct {
	ProjectRef  string      `json:"projectRef" validate:"required"`
	Findings    []Finding   `json:"findings" validate:"dive"`
	TestResults TestResults `json:"testResults"`
}

type AssessmentDTO struct {
	ID                uuid.UUID          `json:"id"`
	ProjectRef        string             `json:"projectRef"`
	State             AssessmentState    `json:"state"`
	Outcome           AssessmentOutcome  `json:"outcome,omitempty"`
	Findings          []Finding          `json:"findings"`
	Vulnerabilities   []Vulnerability    `json:"vulnerabilities"`
	UnknownAlgorithms []string           `json:"unknownAlgorithms,omitempty"`
	ComplianceResults []ComplianceResult `json:"complianceResults"`
	SecurityScore     float64            `json:"securityScore"`
	QuantumScore      float64            `json:"quantumScore"`
	QuantumResistant  bool               `json:"quantumResistant"`
	PerformanceScore  float64            `json:"performanceScore"`
	OverallScore      float64            `json:"overallScore"`
	RequirementsMet   bool               `json:"requirementsMet"`
	BadgeURL          string             `json:"badgeUrl,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	CompletedAt       *time.Time         `json:"completedAt,omitempty"`
}
