// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/audit"
	"github.com/l3montree-dev/cryptocert/database/models"
	"github.com/l3montree-dev/cryptocert/dtos"
	"github.com/l3montree-dev/cryptocert/monitoring"
	"github.com/l3montree-dev/cryptocert/shared"
	"github.com/l3montree-dev/cryptocert/utils"
)

type CertificateService struct {
	assessmentRepository  shared.AssessmentRepository
	certificateRepository shared.CertificateRepository
	validity              time.Duration
	// injectable clock for expiry tests
	now func() time.Time
	// serializes issuance per assessment so concurrent requests cannot
	// both observe "no active certificate"
	issueLocks sync.Map
}

func NewCertificateService(assessmentRepository shared.AssessmentRepository, certificateRepository shared.CertificateRepository) *CertificateService {
	return &CertificateService{
		assessmentRepository:  assessmentRepository,
		certificateRepository: certificateRepository,
		validity:              shared.CertificateValidity(),
		now:                   time.Now,
	}
}

func (s *CertificateService) lockAssessment(assessmentID uuid.UUID) func() {
	mut, _ := s.issueLocks.LoadOrStore(assessmentID, &sync.Mutex{})
	mut.(*sync.Mutex).Lock()
	return mut.(*sync.Mutex).Unlock
}

// IssueCertificate issues a certificate for an accepted assessment.
// At most one non-revoked certificate exists per assessment.
func (s *CertificateService) IssueCertificate(assessmentID uuid.UUID) (dtos.CertificateDTO, error) {
	unlock := s.lockAssessment(assessmentID)
	defer unlock()

	assessment, err := s.assessmentRepository.Read(assessmentID)
	if err != nil {
		return dtos.CertificateDTO{}, err
	}
	if assessment.State != dtos.AssessmentStateCompleted || assessment.Outcome != dtos.AssessmentOutcomeAccepted {
		return dtos.CertificateDTO{}, errors.Wrapf(dtos.ErrInvalidAssessmentState, "cannot issue certificate for assessment in state %q with outcome %q", assessment.State, assessment.Outcome)
	}

	if _, err := s.certificateRepository.FindActiveByAssessmentID(assessmentID); err == nil {
		return dtos.CertificateDTO{}, errors.Wrap(dtos.ErrInvalidAssessmentState, "assessment already has an active certificate")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dtos.CertificateDTO{}, err
	}

	level, ok := audit.CertificateLevelForScore(assessment.OverallScore, assessment.QuantumResistant)
	if !ok {
		// accepted assessments always clear the bronze bar, but the
		// guard keeps a data inconsistency from minting a certificate
		return dtos.CertificateDTO{}, errors.Wrap(dtos.ErrInvalidAssessmentState, "overall score is below the certification bar")
	}

	now := s.now()
	certificate := models.SecurityCertificate{
		AssessmentID: assessmentID,
		Level:        level,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.validity),
	}
	if err := s.certificateRepository.Create(nil, &certificate); err != nil {
		return dtos.CertificateDTO{}, err
	}

	monitoring.CertificatesIssued.WithLabelValues(string(level)).Inc()
	slog.Info("certificate issued", "certificateId", certificate.ID, "assessmentId", assessmentID, "level", level, "expiresAt", certificate.ExpiresAt)

	return certificate.DTO(), nil
}

// VerifyCertificate is total over arbitrary input: malformed ids,
// unknown ids, revoked and expired certificates all map onto a result
// with the matching reason. The error return is reserved for storage
// failures.
func (s *CertificateService) VerifyCertificate(rawCertificateID string) (dtos.VerificationResult, error) {
	certificateID, err := uuid.Parse(rawCertificateID)
	if err != nil {
		return s.verificationResult(dtos.VerificationResult{Valid: false, Reason: dtos.VerificationReasonNotFound}), nil
	}

	certificate, err := s.certificateRepository.Read(certificateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.verificationResult(dtos.VerificationResult{Valid: false, Reason: dtos.VerificationReasonNotFound}), nil
	} else if err != nil {
		return dtos.VerificationResult{}, err
	}

	dto := certificate.DTO()
	switch {
	case certificate.Revoked:
		return s.verificationResult(dtos.VerificationResult{Valid: false, Reason: dtos.VerificationReasonRevoked, Certificate: &dto}), nil
	case certificate.Expired(s.now()):
		return s.verificationResult(dtos.VerificationResult{Valid: false, Reason: dtos.VerificationReasonExpired, Certificate: &dto}), nil
	default:
		return s.verificationResult(dtos.VerificationResult{Valid: true, Reason: dtos.VerificationReasonValid, Certificate: &dto}), nil
	}
}

func (s *CertificateService) verificationResult(result dtos.VerificationResult) dtos.VerificationResult {
	monitoring.CertificateVerifications.WithLabelValues(string(result.Reason)).Inc()
	return result
}

// RevokeCertificate marks a certificate revoked. Revoking an already
// revoked certificate is a no-op, not an error.
func (s *CertificateService) RevokeCertificate(certificateID uuid.UUID) (dtos.CertificateDTO, error) {
	certificate, err := s.certificateRepository.Read(certificateID)
	if err != nil {
		return dtos.CertificateDTO{}, err
	}

	if !certificate.Revoked {
		certificate.Revoked = true
		certificate.RevokedAt = utils.Ptr(s.now())
		if err := s.certificateRepository.Save(nil, &certificate); err != nil {
			return dtos.CertificateDTO{}, err
		}
		slog.Info("certificate revoked", "certificateId", certificate.ID, "assessmentId", certificate.AssessmentID)
	}

	return certificate.DTO(), nil
}

// GetCertificate exports the full certificate document.
func (s *CertificateService) GetCertificate(certificateID uuid.UUID) (dtos.CertificateDTO, error) {
	certificate, err := s.certificateRepository.Read(certificateID)
	if err != nil {
		return dtos.CertificateDTO{}, err
	}
	return certificate.DTO(), nil
}

// ListCertificates returns the certificate history of an assessment.
func (s *CertificateService) ListCertificates(assessmentID uuid.UUID) ([]dtos.CertificateDTO, error) {
	certificates, err := s.certificateRepository.ListByAssessmentID(assessmentID)
	if err != nil {
		return nil, err
	}
	return utils.Map(certificates, models.SecurityCertificate.DTO), nil
}

// ListAllCertificates returns every certificate in the registry,
// revoked and expired ones included.
func (s *CertificateService) ListAllCertificates() ([]dtos.CertificateDTO, error) {
	certificates, err := s.certificateRepository.All()
	if err != nil {
		return nil, err
	}
	return utils.Map(certificates, models.SecurityCertificate.DTO), nil
}
