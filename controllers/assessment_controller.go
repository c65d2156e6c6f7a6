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
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/l3montree-dev/cryptocert/dtos"
	"github.com/l3montree-dev/cryptocert/services"
	"github.com/l3montree-dev/cryptocert/shared"
)

type AssessmentController struct {
	service *services.AssessmentService
}

func NewAssessmentController(service *services.AssessmentService) *AssessmentController {
	return &AssessmentController{
		service: service,
	}
}

// @Summary Submit findings for assessment
// @Tags Assessments
// @Param body body dtos.AssessmentRequest true "Request body"
// @Success 201 {object} dtos.AssessmentDTO
// @Router /assessments [post]
func (a *AssessmentController) Create(c shared.Context) error {
	var req dtos.AssessmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	assessment, err := a.service.RequestAssessment(req)
	if err != nil {
		return mapServiceError(err, "could not run assessment")
	}

	return c.JSON(201, assessment)
}

// @Summary Get a single assessment
// @Tags Assessments
// @Param assessmentID path string true "Assessment ID"
// @Success 200 {object} dtos.AssessmentDTO
// @Router /assessments/{assessmentID} [get]
func (a *AssessmentController) Read(c shared.Context) error {
	assessmentID, err := uuid.Parse(c.Param("assessmentID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid assessment id").WithInternal(err)
	}

	assessment, err := a.service.GetAssessment(assessmentID)
	if err != nil {
		return mapServiceError(err, "could not read assessment")
	}

	return c.JSON(200, assessment)
}

// @Summary List assessments, optionally filtered by project ref
// @Tags Assessments
// @Param projectRef query string false "Project reference"
// @Success 200 {array} dtos.AssessmentDTO
// @Router /assessments [get]
func (a *AssessmentController) List(c shared.Context) error {
	assessments, err := a.service.ListAssessments(c.QueryParam("projectRef"))
	if err != nil {
		return mapServiceError(err, "could not list assessments")
	}

	return c.JSON(200, assessments)
}
