package router

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"

	"github.com/vrushti/clinic_backend/config"
	"github.com/vrushti/clinic_backend/internal/api/http/handler"
	"github.com/vrushti/clinic_backend/internal/service/file"
	"github.com/vrushti/clinic_backend/internal/service/followup"
	"github.com/vrushti/clinic_backend/internal/service/patient"
	"github.com/vrushti/clinic_backend/internal/service/payment"
	"github.com/vrushti/clinic_backend/internal/service/treatment"
	"github.com/vrushti/clinic_backend/internal/service/user"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg          *config.Config
	Log          *slog.Logger
	Mongo        *mongo.Client
	UserSvc      user.Service
	PatientSvc   patient.Service
	TreatmentSvc treatment.Service
	FileSvc      file.Service
	PaymentSvc   payment.Service
	FollowUpSvc  followup.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	authH := handler.NewAuthHandler(r.p.UserSvc, r.p.Log)
	patientH := handler.NewPatientHandler(r.p.PatientSvc)
	treatmentH := handler.NewTreatmentHandler(r.p.TreatmentSvc)
	fileH := handler.NewFileHandler(r.p.FileSvc)
	paymentH := handler.NewPaymentHandler(r.p.PaymentSvc)
	followUpH := handler.NewFollowUpHandler(r.p.FollowUpSvc)

	api := app.Group("/api/v1")

	r.registerAuthRoutes(api, authH)
	r.registerPatientRoutes(api, patientH, treatmentH, fileH, paymentH, followUpH)
	r.registerPaymentRoutes(api, paymentH)
	r.registerFollowUpRoutes(api, followUpH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			return r.p.Mongo.Ping(c.Context(), readpref.Primary()) == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
