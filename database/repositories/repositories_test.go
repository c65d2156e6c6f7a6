package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/l3montree-dev/cryptocert/database/models"
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

func newAssessment(projectRef string) models.CertificationAssessment {
	return models.CertificationAssessment{
		ProjectRef: projectRef,
		State:      dtos.AssessmentStateRequested,
		Findings: []dtos.Finding{
			{AlgorithmID: "aes-256-gcm", Role: dtos.FindingRoleEncryption},
		},
	}
}

func TestAssessmentRepository(t *testing.T) {
	db := newTestDB(t)
	repository := NewAssessmentRepository(db)

	t.Run("create assigns an id and round-trips the snapshots", func(t *testing.T) {
		assessment := newAssessment("github.com/acme/vault")
		require.NoError(t, repository.Create(nil, &assessment))
		assert.NotEqual(t, uuid.Nil, assessment.ID)

		read, err := repository.Read(assessment.ID)
		require.NoError(t, err)
		assert.Equal(t, "github.com/acme/vault", read.ProjectRef)
		require.Len(t, read.Findings, 1)
		assert.Equal(t, "aes-256-gcm", read.Findings[0].AlgorithmID)
	})

	t.Run("read of an unknown id is gorm.ErrRecordNotFound", func(t *testing.T) {
		_, err := repository.Read(uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("list by project ref", func(t *testing.T) {
		first := newAssessment("github.com/acme/billing")
		second := newAssessment("github.com/acme/billing")
		require.NoError(t, repository.Create(nil, &first))
		require.NoError(t, repository.Create(nil, &second))

		assessments, err := repository.ListByProjectRef("github.com/acme/billing")
		require.NoError(t, err)
		assert.Len(t, assessments, 2)

		assessments, err = repository.ListByProjectRef("github.com/acme/unknown")
		require.NoError(t, err)
		assert.Empty(t, assessments)
	})
}

func TestCertificateRepository(t *testing.T) {
	db := newTestDB(t)
	assessments := NewAssessmentRepository(db)
	repository := NewCertificateRepository(db)

	assessment := newAssessment("github.com/acme/vault")
	require.NoError(t, assessments.Create(nil, &assessment))

	newCertificate := func() models.SecurityCertificate {
		now := time.Now()
		return models.SecurityCertificate{
			AssessmentID: assessment.ID,
			Level:        dtos.CertificateLevelGold,
			IssuedAt:     now,
			ExpiresAt:    now.AddDate(0, 0, 365),
		}
	}

	t.Run("content hash is set on save and stable on update", func(t *testing.T) {
		certificate := newCertificate()
		require.NoError(t, repository.Create(nil, &certificate))
		require.NotEmpty(t, certificate.ContentHash)

		hash := certificate.ContentHash
		certificate.Revoked = true
		require.NoError(t, repository.Save(nil, &certificate))
		assert.Equal(t, hash, certificate.ContentHash, "revocation must not change the content hash")
	})

	t.Run("find active skips revoked certificates", func(t *testing.T) {
		_, err := repository.FindActiveByAssessmentID(assessment.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "only a revoked certificate exists so far")

		certificate := newCertificate()
		require.NoError(t, repository.Create(nil, &certificate))

		active, err := repository.FindActiveByAssessmentID(assessment.ID)
		require.NoError(t, err)
		assert.Equal(t, certificate.ID, active.ID)
	})

	t.Run("list returns the full history", func(t *testing.T) {
		certificates, err := repository.ListByAssessmentID(assessment.ID)
		require.NoError(t, err)
		assert.Len(t, certificates, 2)
	})
}
