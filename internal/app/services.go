package app

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/vrushti/clinic_backend/config"
	svcfile "github.com/vrushti/clinic_backend/internal/service/file"
	"github.com/vrushti/clinic_backend/internal/service/followup"
	"github.com/vrushti/clinic_backend/internal/service/patient"
	"github.com/vrushti/clinic_backend/internal/service/payment"
	"github.com/vrushti/clinic_backend/internal/service/treatment"
	"github.com/vrushti/clinic_backend/internal/service/user"
	"github.com/vrushti/clinic_backend/internal/store"
	"github.com/vrushti/clinic_backend/pkg/email"
	s3pkg "github.com/vrushti/clinic_backend/pkg/s3"
	"github.com/vrushti/clinic_backend/pkg/util/phone"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideLogger,
		ProvideUserService,
		ProvidePatientService,
		ProvideTreatmentService,
		ProvideFileService,
		ProvidePaymentService,
		ProvideFollowUpService,
	),
)

func ProvideLogger() *slog.Logger {
	return slog.Default()
}

func ProvideUserService(st *store.Store, emailClient *email.Client, phones *phone.Normalizer, cfg *config.Config, log *slog.Logger) user.Service {
	return user.New(st, emailClient, phones, user.OptionsFromCentralConfig(cfg), log)
}

func ProvidePatientService(st *store.Store, s3 *s3pkg.Client, phones *phone.Normalizer, log *slog.Logger) patient.Service {
	return patient.New(st, s3, phones, log)
}

func ProvideTreatmentService(st *store.Store) treatment.Service {
	return treatment.New(st)
}

func ProvideFileService(st *store.Store, s3 *s3pkg.Client, log *slog.Logger) svcfile.Service {
	return svcfile.New(st, s3, log)
}

func ProvidePaymentService(st *store.Store) payment.Service {
	return payment.New(st)
}

func ProvideFollowUpService(st *store.Store) followup.Service {
	return followup.New(st)
}
