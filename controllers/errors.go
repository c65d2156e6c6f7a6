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
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/dtos"
)

// mapServiceError translates the service error taxonomy onto http
// status codes. Unclassified errors stay opaque 500s.
func mapServiceError(err error, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, dtos.ErrNotFound):
		return echo.NewHTTPError(404, "not found").WithInternal(err)
	case errors.Is(err, dtos.ErrInvalidAssessmentState):
		return echo.NewHTTPError(409, err.Error()).WithInternal(err)
	case errors.Is(err, dtos.ErrParse):
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	default:
		return echo.NewHTTPError(500, msg).WithInternal(err)
	}
}
