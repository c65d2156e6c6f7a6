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

type assessmentRepository struct {
	db *gorm.DB
	*GormRepository[uuid.UUID, models.CertificationAssessment]
}

func NewAssessmentRepository(db *gorm.DB) *assessmentRepository {
	return &assessmentRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.CertificationAssessment](db),
	}
}

func (r *assessmentRepository) ListByProjectRef(projectRef string) ([]models.CertificationAssessment, error) {
	var assessments []models.CertificationAssessment
	err := r.db.Where("project_ref = ?", projectRef).
		Order("created_at DESC").
		Find(&assessments).Error
	return assessments, err
}
