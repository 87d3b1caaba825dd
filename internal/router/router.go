package router

import (
	"net/http"

	_ "pet-clinic-roster/docs"
	mem "pet-clinic-roster/internal/adapters/storage/memory"
	"pet-clinic-roster/internal/domain/roster"
	"pet-clinic-roster/internal/middleware"
	"pet-clinic-roster/internal/platform/logger"
	"pet-clinic-roster/internal/platform/metrics"
	"pet-clinic-roster/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/text/language"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, store in-memory vacío.
	Store roster.RecordStore

	Logger  logger.Logger
	Metrics *metrics.Roster // nil => sin /metrics
	Locale  language.Tag
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	store := opts.Store
	if store == nil {
		store = mem.NewPetStore()
	}

	svcOpts := roster.Options{
		Logger: log.With(map[string]any{"component": "roster"}),
		Locale: opts.Locale,
	}
	// un *metrics.Roster nil dentro de la interfaz no sería nil
	if opts.Metrics != nil {
		svcOpts.Recorder = opts.Metrics
	}
	rosterSvc := roster.NewService(store, svcOpts)

	roster.RegisterRoutes(r, rosterSvc)

	return r
}
