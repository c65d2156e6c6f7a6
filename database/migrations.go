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

package database

import (
	"log/slog"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/l3montree-dev/cryptocert/database/models"
)

// RunMigrations brings the schema up to date. The model set is small
// enough that gorm auto migration is all we need.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.CertificationAssessment{},
		&models.SecurityCertificate{},
	); err != nil {
		return errors.Wrap(err, "could not run migrations")
	}
	slog.Info("migrations completed successfully")
	return nil
}
