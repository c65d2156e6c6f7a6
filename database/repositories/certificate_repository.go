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

package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/database/models"
)

type certificateRepository struct {
	db *gorm.DB
	*GormRepository[uuid.UUID, models.SecurityCertificate]
}

func NewCertificateRepository(db *gorm.DB) *certificateRepository {
	return &certificateRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.SecurityCertificate](db),
	}
}

// FindActiveByAssessmentID returns the single non-revoked certificate
// of an assessment. gorm.ErrRecordNotFound if there is none.
func (r *certificateRepository) FindActiveByAssessmentID(assessmentID uuid.UUID) (models.SecurityCertificate, error) {
	var certificate models.SecurityCertificate
	err := r.db.Where("assessment_id = ? AND revoked = ?", assessmentID, false).
		First(&certificate).Error
	return certificate, err
}

func (r *certificateRepository) ListByAssessmentID(assessmentID uuid.UUID) ([]models.SecurityCertificate, error) {
	var certificates []models.SecurityCertificate
	err := r.db.Where("assessment_id = ?", assessmentID).
		Order("created_at DESC").
		Find(&certificates).Error
	return certificates, err
}
