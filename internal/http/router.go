package httpapi

import (
	"net/http"

	"splitbill-service/internal/config"
	"splitbill-service/internal/http/handlers"
	"splitbill-service/internal/middleware"
	"splitbill-service/internal/order"
	"splitbill-service/internal/queue"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewRouter(db *pgxpool.Pool, logger *zap.Logger, cfg config.Config, queueClient *queue.Client, completer order.Completer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	store := order.NewStore(db)
	coordinator := &order.Coordinator{
		Store:     store,
		Completer: completer,
		Queue:     queueClient,
		Logger:    logger,
	}
	h := &handlers.Handler{
		Store:       store,
		Coordinator: coordinator,
		Logger:      logger,
		Config:      cfg,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/pos", func(r chi.Router) {
		r.Use(middleware.StaffAuth(cfg.JWTSecret))

		r.Post("/orders/split", h.SplitBill)
		r.Get("/orders/{orderId}/splits", h.SplitsList)
		r.Get("/orders/{orderId}/receipt", h.OrderReceiptPDF)
	})

	return r
}
