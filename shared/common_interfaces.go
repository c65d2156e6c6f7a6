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

package shared

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/database/models"
)

type AssessmentRepository interface {
	Read(id uuid.UUID) (models.CertificationAssessment, error)
	All() ([]models.CertificationAssessment, error)
	ListByProjectRef(projectRef string) ([]models.CertificationAssessment, error)
	Create(tx *gorm.DB, assessment *models.CertificationAssessment) error
	Save(tx *gorm.DB, assessment *models.CertificationAssessment) error
}

type CertificateRepository interface {
	Read(id uuid.UUID) (models.SecurityCertificate, error)
	All() ([]models.SecurityCertificate, error)
	FindActiveByAssessmentID(assessmentID uuid.UUID) (models.SecurityCertificate, error)
	ListByAssessmentID(assessmentID uuid.UUID) ([]models.SecurityCertificate, error)
	Create(tx *gorm.DB, certificate *models.SecurityCertificate) error
	Save(tx *gorm.DB, certificate *models.SecurityCertificate) error
}
