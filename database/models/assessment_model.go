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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/dtos"
)

// CertificationAssessment is the persisted assessment including the
// immutable findings snapshot and every derived analysis result.
type CertificationAssessment struct {
	ID        uuid.UUID `json:"id" gorm:"primarykey;type:uuid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProjectRef string                 `json:"projectRef" gorm:"type:text;index"`
	State      dtos.AssessmentState   `json:"state" gorm:"type:text"`
	Outcome    dtos.AssessmentOutcome `json:"outcome" gorm:"type:text"`

	// snapshots of the submitted evidence, frozen at request time
	Findings    []dtos.Finding   `json:"findings" gorm:"serializer:json;type:jsonb"`
	TestResults dtos.TestResults `json:"testResults" gorm:"serializer:json;type:jsonb"`

	// analysis output
	Vulnerabilities   []dtos.Vulnerability    `json:"vulnerabilities" gorm:"serializer:json;type:jsonb"`
	UnknownAlgorithms []string                `json:"unknownAlgorithms" gorm:"serializer:json;type:jsonb"`
	ComplianceResults []dtos.ComplianceResult `json:"complianceResults" gorm:"serializer:json;type:jsonb"`

	SecurityScore    float64 `json:"securityScore"`
	QuantumScore     float64 `json:"quantumScore"`
	QuantumResistant bool    `json:"quantumResistant"`
	PerformanceScore float64 `json:"performanceScore"`
	OverallScore     float64 `json:"overallScore"`
	RequirementsMet  bool    `json:"requirementsMet"`
	BadgeURL         string  `json:"badgeUrl" gorm:"type:text"`

	CompletedAt *time.Time `json:"completedAt" gorm:"default:null"`
}

func (a CertificationAssessment) TableName() string {
	return "certification_assessments"
}

// BeforeCreate assigns the id in the application instead of relying on
// a database default, so the sqlite test dialector behaves like
// postgres.
func (a *CertificationAssessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a CertificationAssessment) DTO() dtos.AssessmentDTO {
	return dtos.AssessmentDTO{
		ID:                a.ID,
		ProjectRef:        a.ProjectRef,
		State:             a.State,
		Outcome:           a.Outcome,
		Findings:          a.Findings,
		Vulnerabilities:   a.Vulnerabilities,
		UnknownAlgorithms: a.UnknownAlgorithms,
		ComplianceResults: a.ComplianceResults,
		SecurityScore:     a.SecurityScore,
		QuantumScore:      a.QuantumScore,
		QuantumResistant:  a.QuantumResistant,
		PerformanceScore:  a.PerformanceScore,
		OverallScore:      a.OverallScore,
		RequirementsMet:   a.RequirementsMet,
		BadgeURL:          a.BadgeURL,
		CreatedAt:         a.CreatedAt,
		CompletedAt:       a.CompletedAt,
	}
}
