package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/l3montree-dev/cryptocert/catalog"
	"github.com/l3montree-dev/cryptocert/database/models"
	"github.com/l3montree-dev/cryptocert/database/repositories"
	"github.com/l3montree-dev/cryptocert/dtos"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CertificationAssessment{},
		&models.SecurityCertificate{},
	))
	return db
}

func newAssessmentService(t *testing.T) (*AssessmentService, *gorm.DB) {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	db := newTestDB(t)
	return NewAssessmentService(c, repositories.NewAssessmentRepository(db)), db
}

func TestRequestAssessmentCleanSubmission(t *testing.T) {
	service, _ := newAssessmentService(t)

	assessment, err := service.RequestAssessment(dtos.AssessmentRequest{
		ProjectRef: "github.com/acme/vault",
		Findings: []dtos.Finding{
			{AlgorithmID: "aes-256-gcm", Role: dtos.FindingRoleEncryption},
			{AlgorithmID: "sha-256", Role: dtos.FindingRoleHash},
			{AlgorithmID: "ml-kem-768", Role: dtos.FindingRoleEncryption},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, dtos.AssessmentStateCompleted, assessment.State)
	assert.Equal(t, dtos.AssessmentOutcomeAccepted, assessment.Outcome)
	assert.True(t, assessment.RequirementsMet)
	assert.Empty(t, assessment.Vulnerabilities)
	assert.InDelta(t, 100.0, assessment.SecurityScore, 0.001)
	assert.InDelta(t, 100.0, assessment.QuantumScore, 0.001)
	assert.True(t, assessment.QuantumResistant)
	assert.NotEmpty(t, assessment.ComplianceResults)
	assert.NotEmpty(t, assessment.BadgeURL)
	assert.NotNil(t, assessment.CompletedAt)
}

func TestRequestAssessmentEmptySubmissionIsPerfect(t *testing.T) {
	service, _ := newAssessmentService(t)

	assessment, err := service.RequestAssessment(dtos.AssessmentRequest{
		ProjectRef: "github.com/acme/empty",
	})
	require.NoError(t, err)

	assert.Equal(t, dtos.AssessmentOutcomeAccepted, assessment.Outcome)
	assert.InDelta(t, 100.0, assessment.OverallScore, 0.001)
	assert.Empty(t, assessment.ComplianceResults, "no evidence, no compliance results")
	assert.True(t, assessment.QuantumResistant)
}

func TestRequestAssessmentCriticalVulnerabilityRejects(t *testing.T) {
	service, _ := newAssessmentService(t)

	assessment, err := service.RequestAssessment(dtos.AssessmentRequest{
		ProjectRef: "github.com/acme/legacy",
		Findings: []dtos.Finding{
			{AlgorithmID: "des", Role: dtos.FindingRoleEncryption},
		},
	})
	require.NoError(t, err, "a rejection is a regular completion, not an error")

	assert.Equal(t, dtos.AssessmentStateCompleted, assessment.State)
	assert.Equal(t, dtos.AssessmentOutcomeRejected, assessment.Outcome)
	assert.False(t, assessment.RequirementsMet)
	require.Len(t, assessment.Vulnerabilities, 1)
	assert.Equal(t, dtos.SeverityCritical, assessment.Vulnerabilities[0].Severity)
	assert.InDelta(t, 50.0, assessment.SecurityScore, 0.001)
}

func TestRequestAssessmentUnknownAlgorithms(t *testing.T) {
	service, _ := newAssessmentService(t)

	assessment, err := service.RequestAssessment(dtos.AssessmentRequest{
		ProjectRef: "github.com/acme/research",
		Findings: []dtos.Finding{
			{AlgorithmID: "proprietary-cipher-9000", Role: dtos.FindingRoleEncryption},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"proprietary-cipher-9000"}, assessment.UnknownAlgorithms)
	assert.Empty(t, assessment.Vulnerabilities)
	assert.InDelta(t, 100.0, assessment.SecurityScore, 0.001)
}

func TestGetAndListAssessments(t *testing.T) {
	service, _ := newAssessmentService(t)

	created, err := service.RequestAssessment(dtos.AssessmentRequest{ProjectRef: "github.com/acme/vault"})
	require.NoError(t, err)
	_, err = service.RequestAssessment(dtos.AssessmentRequest{ProjectRef: "github.com/acme/billing"})
	require.NoError(t, err)

	read, err := service.GetAssessment(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, read.ID)

	_, err = service.GetAssessment(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := service.ListAssessments("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := service.ListAssessments("github.com/acme/vault")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, created.ID, filtered[0].ID)
}
