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

package controllers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/l3montree-dev/cryptocert/services"
	"github.com/l3montree-dev/cryptocert/shared"
)

type CertificateController struct {
	service *services.CertificateService
}

func NewCertificateController(service *services.CertificateService) *CertificateController {
	return &CertificateController{
		service: service,
	}
}

// @Summary Issue a certificate for an accepted assessment
// @Tags Certificates
// @Param assessmentID path string true "Assessment ID"
// @Success 200 {object} dtos.CertificateDTO
// @Router /assessments/{assessmentID}/certificate [post]
func (cc *CertificateController) Issue(c shared.Context) error {
	assessmentID, err := uuid.Parse(c.Param("assessmentID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid assessment id").WithInternal(err)
	}

	certificate, err := cc.service.IssueCertificate(assessmentID)
	if err != nil {
		return mapServiceError(err, "could not issue certificate")
	}

	return c.JSON(200, certificate)
}

// @Summary Export a certificate document
// @Tags Certificates
// @Param certificateID path string true "Certificate ID"
// @Success 200 {object} dtos.CertificateDTO
// @Router /certificates/{certificateID} [get]
func (cc *CertificateController) Read(c shared.Context) error {
	certificateID, err := uuid.Parse(c.Param("certificateID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid certificate id").WithInternal(err)
	}

	certificate, err := cc.service.GetCertificate(certificateID)
	if err != nil {
		return mapServiceError(err, "could not read certificate")
	}

	return c.JSON(200, certificate)
}

// @Summary Verify a certificate
// @Tags Certificates
// @Param certificateID path string true "Certificate ID"
// @Success 200 {object} dtos.VerificationResult
// @Router /certificates/{certificateID}/verify [get]
func (cc *CertificateController) Verify(c shared.Context) error {
	// verification is total: even a malformed id yields a 200 with a
	// notFound reason, so automated verifiers never have to branch on
	// status codes
	result, err := cc.service.VerifyCertificate(c.Param("certificateID"))
	if err != nil {
		return mapServiceError(err, "could not verify certificate")
	}

	return c.JSON(200, result)
}

// @Summary Revoke a certificate
// @Tags Certificates
// @Param certificateID path string true "Certificate ID"
// @Success 200 {object} dtos.CertificateDTO
// @Router /certificates/{certificateID}/revoke [post]
func (cc *CertificateController) Revoke(c shared.Context) error {
	certificateID, err := uuid.Parse(c.Param("certificateID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid certificate id").WithInternal(err)
	}

	certificate, err := cc.service.RevokeCertificate(certificateID)
	if err != nil {
		return mapServiceError(err, "could not revoke certificate")
	}

	return c.JSON(200, certificate)
}

// @Summary List the certificate history of an assessment
// @Tags Certificates
// @Param assessmentID path string true "Assessment ID"
// @Success 200 {array} dtos.CertificateDTO
// @Router /assessments/{assessmentID}/certificates [get]
func (cc *CertificateController) List(c shared.Context) error {
	assessmentID, err := uuid.Parse(c.Param("assessmentID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid assessment id").WithInternal(err)
	}

	certificates, err := cc.service.ListCertificates(assessmentID)
	if err != nil {
		return mapServiceError(err, "could not list certificates")
	}

	return c.JSON(200, certificates)
}

// @Summary List all certificates in the registry
// @Tags Certificates
// @Success 200 {array} dtos.CertificateDTO
// @Router /certificates [get]
func (cc *CertificateController) ListAll(c shared.Context) error {
	certificates, err := cc.service.ListAllCertificates()
	if err != nil {
		return mapServiceError(err, "could not list certificates")
	}

	return c.JSON(200, certificates)
}
