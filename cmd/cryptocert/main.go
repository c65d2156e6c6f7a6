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

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/l3montree-dev/cryptocert/catalog"
	"github.com/l3montree-dev/cryptocert/cmd/cryptocert/api"
	"github.com/l3montree-dev/cryptocert/controllers"
	"github.com/l3montree-dev/cryptocert/database"
	"github.com/l3montree-dev/cryptocert/database/repositories"
	"github.com/l3montree-dev/cryptocert/router"
	"github.com/l3montree-dev/cryptocert/services"
	"github.com/l3montree-dev/cryptocert/shared"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

//	@title			cryptocert API
//	@version		v1
//	@description	Crypto audit and security certification API

//	@license.name	AGPL-3

// @host		localhost:8080
// @BasePath	/api/v1
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	// a malformed catalog must never reach request handling
	auditCatalog, err := catalog.Load()
	if err != nil {
		slog.Error("could not load the audit catalog", "err", err)
		panic(errors.New("failed to load the audit catalog"))
	}

	db, err := shared.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrations(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db),
		fx.Supply(auditCatalog),
		fx.Provide(api.NewServer),
		repositories.Module,
		services.ServiceModule,
		controllers.ControllerModule,
		router.RouterModule,

		// invoke all routers so they register their routes
		fx.Invoke(func(assessmentRouter router.AssessmentRouter) {}),
		fx.Invoke(func(certificateRouter router.CertificateRouter) {}),
		fx.Invoke(func(server *echo.Echo) {}),
	).Run()
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("ERROR_TRACKING_DSN"),
		Environment:      environment,
		Release:          release,
		Debug:            environment == "dev",
		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("failed to init error tracking", "err", err)
	}
}
