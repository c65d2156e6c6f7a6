package services

import (
	"go.uber.org/fx"
)

// ServiceModule provides all service-layer constructors
var ServiceModule = fx.Options(
	fx.Provide(NewAssessmentService),
	fx.Provide(NewCertificateService),
)
