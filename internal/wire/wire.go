package wire

import (
	"net/http"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/graph"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/events"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. rdb may be nil, which
// disables rate limiting.
func Wiring(
	repo *repository.Repository,
	publisher events.Publisher,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) (*App, error) {
	service := usecase.NewService(repo, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	graphHandler, err := graph.NewHandler(service, logger)
	if err != nil {
		return nil, err
	}

	router := setupRouter(handler, graphHandler, rdb, config, logger)

	return &App{
		Router: router,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	graphHandler http.Handler,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rdb, config.RateLimit, logger))

		wireGraph(r, graphHandler)
		wireRoom(r, handler.Room)
		wireCustomer(r, handler.Customer)
		wireBooking(r, handler.Booking)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
