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
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/dtos"
	"github.com/l3montree-dev/cryptocert/utils"
)

type SecurityCertificate struct {
	ID        uuid.UUID `json:"id" gorm:"primarykey;type:uuid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AssessmentID uuid.UUID               `json:"assessmentId" gorm:"type:uuid;index"`
	Assessment   CertificationAssessment `json:"-" gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE;"`

	Level     dtos.CertificateLevel `json:"level" gorm:"type:text"`
	IssuedAt  time.Time             `json:"issuedAt"`
	ExpiresAt time.Time             `json:"expiresAt"`

	Revoked   bool       `json:"revoked" gorm:"default:false"`
	RevokedAt *time.Time `json:"revokedAt" gorm:"default:null"`

	// ContentHash fingerprints the certificate content at issuance.
	// Revocation does not change it.
	ContentHash string `json:"contentHash" gorm:"type:text"`
}

func (c SecurityCertificate) TableName() string {
	return "security_certificates"
}

func (c SecurityCertificate) CalculateHash() string {
	toHash := fmt.Sprintf("%s/%s/%s/%d/%d",
		c.ID,
		c.AssessmentID,
		c.Level,
		c.IssuedAt.Unix(),
		c.ExpiresAt.Unix(),
	)
	return utils.HashString(toHash)
}

func (c *SecurityCertificate) BeforeSave(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.ContentHash == "" {
		c.ContentHash = c.CalculateHash()
	}
	return nil
}

// Expired reports whether the certificate is past its validity at the
// given instant.
func (c SecurityCertificate) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

func (c SecurityCertificate) DTO() dtos.CertificateDTO {
	return dtos.CertificateDTO{
		ID:           c.ID,
		AssessmentID: c.AssessmentID,
		Level:        c.Level,
		IssuedAt:     c.IssuedAt,
		ExpiresAt:    c.ExpiresAt,
		Revoked:      c.Revoked,
		ContentHash:  c.ContentHash,
	}
}
