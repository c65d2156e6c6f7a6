package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/catalog"
	"github.com/l3montree-dev/cryptocert/database/repositories"
	"github.com/l3montree-dev/cryptocert/dtos"
)

type certificateFixture struct {
	assessments  *AssessmentService
	certificates *CertificateService
	clock        *time.Time
}

func newCertificateFixture(t *testing.T) certificateFixture {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	db := newTestDB(t)

	assessmentRepository := repositories.NewAssessmentRepository(db)
	certificateService := NewCertificateService(assessmentRepository, repositories.NewCertificateRepository(db))

	now := time.Now()
	certificateService.now = func() time.Time { return now }

	return certificateFixture{
		assessments:  NewAssessmentService(c, assessmentRepository),
		certificates: certificateService,
		clock:        &now,
	}
}

func (f certificateFixture) acceptedAssessment(t *testing.T) dtos.AssessmentDTO {
	t.Helper()
	assessment, err := f.assessments.RequestAssessment(dtos.AssessmentRequest{
		ProjectRef: "github.com/acme/vault",
		Findings: []dtos.Finding{
			{AlgorithmID: "aes-256-gcm", Role: dtos.FindingRoleEncryption},
			{AlgorithmID: "ml-dsa-65", Role: dtos.FindingRoleSignature},
		},
	})
	require.NoError(t, err)
	require.Equal(t, dtos.AssessmentOutcomeAccepted, assessment.Outcome)
	return assessment
}

func TestIssueCertificate(t *testing.T) {
	t.Run("accepted quantum-resistant assessment earns platinum", func(t *testing.T) {
		f := newCertificateFixture(t)
		assessment := f.acceptedAssessment(t)

		certificate, err := f.certificates.IssueCertificate(assessment.ID)
		require.NoError(t, err)
		assert.Equal(t, dtos.CertificateLevelPlatinum, certificate.Level)
		assert.Equal(t, assessment.ID, certificate.AssessmentID)
		assert.NotEmpty(t, certificate.ContentHash)
		assert.Equal(t, f.clock.Add(365*24*time.Hour).Unix(), certificate.ExpiresAt.Unix())
	})

	t.Run("rejected assessment cannot be certified", func(t *testing.T) {
		f := newCertificateFixture(t)
		assessment, err := f.assessments.RequestAssessment(dtos.AssessmentRequest{
			ProjectRef: "github.com/acme/legacy",
			Findings:   []dtos.Finding{{AlgorithmID: "rc4", Role: dtos.FindingRoleEncryption}},
		})
		require.NoError(t, err)
		require.Equal(t, dtos.AssessmentOutcomeRejected, assessment.Outcome)

		_, err = f.certificates.IssueCertificate(assessment.ID)
		assert.True(t, errors.Is(err, dtos.ErrInvalidAssessmentState))
	})

	t.Run("unknown assessment", func(t *testing.T) {
		f := newCertificateFixture(t)
		_, err := f.certificates.IssueCertificate(uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("double issuance is refused until the first is revoked", func(t *testing.T) {
		f := newCertificateFixture(t)
		assessment := f.acceptedAssessment(t)

		first, err := f.certificates.IssueCertificate(assessment.ID)
		require.NoError(t, err)

		_, err = f.certificates.IssueCertificate(assessment.ID)
		assert.True(t, errors.Is(err, dtos.ErrInvalidAssessmentState))

		_, err = f.certificates.RevokeCertificate(first.ID)
		require.NoError(t, err)

		second, err := f.certificates.IssueCertificate(assessment.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestVerifyCertificate(t *testing.T) {
	t.Run("valid certificate", func(t *testing.T) {
		f := newCertificateFixture(t)
		certificate, err := f.certificates.IssueCertificate(f.acceptedAssessment(t).ID)
		require.NoError(t, err)

		result, err := f.certificates.VerifyCertificate(certificate.ID.String())
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, dtos.VerificationReasonValid, result.Reason)
		require.NotNil(t, result.Certificate)
		assert.Equal(t, certificate.ID, result.Certificate.ID)
	})

	t.Run("malformed id is not found, never an error", func(t *testing.T) {
		f := newCertificateFixture(t)
		result, err := f.certificates.VerifyCertificate("not-a-uuid")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, dtos.VerificationReasonNotFound, result.Reason)
		assert.Nil(t, result.Certificate)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newCertificateFixture(t)
		result, err := f.certificates.VerifyCertificate(uuid.New().String())
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, dtos.VerificationReasonNotFound, result.Reason)
	})

	t.Run("revoked certificate", func(t *testing.T) {
		f := newCertificateFixture(t)
		certificate, err := f.certificates.IssueCertificate(f.acceptedAssessment(t).ID)
		require.NoError(t, err)
		_, err = f.certificates.RevokeCertificate(certificate.ID)
		require.NoError(t, err)

		result, err := f.certificates.VerifyCertificate(certificate.ID.String())
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, dtos.VerificationReasonRevoked, result.Reason)
	})

	t.Run("expired certificate", func(t *testing.T) {
		f := newCertificateFixture(t)
		certificate, err := f.certificates.IssueCertificate(f.acceptedAssessment(t).ID)
		require.NoError(t, err)

		*f.clock = f.clock.Add(366 * 24 * time.Hour)

		result, err := f.certificates.VerifyCertificate(certificate.ID.String())
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, dtos.VerificationReasonExpired, result.Reason)
		require.NotNil(t, result.Certificate)
	})
}

func TestRevokeCertificate(t *testing.T) {
	f := newCertificateFixture(t)
	certificate, err := f.certificates.IssueCertificate(f.acceptedAssessment(t).ID)
	require.NoError(t, err)

	revoked, err := f.certificates.RevokeCertificate(certificate.ID)
	require.NoError(t, err)
	assert.True(t, revoked.Revoked)

	// revoking twice is a no-op
	again, err := f.certificates.RevokeCertificate(certificate.ID)
	require.NoError(t, err)
	assert.True(t, again.Revoked)

	_, err = f.certificates.RevokeCertificate(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	history, err := f.certificates.ListCertificates(certificate.AssessmentID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
