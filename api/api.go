package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"hermannm.dev/coviddash/dataset"
)

type DashboardAPI struct {
	datasets   *dataset.Cache
	datasetURL string
	router     chi.Router
	validate   *validator.Validate
	config     Config
}

type Config struct {
	Port string
}

func NewDashboardAPI(datasets *dataset.Cache, datasetURL string, config Config) DashboardAPI {
	api := DashboardAPI{
		datasets:   datasets,
		datasetURL: datasetURL,
		router:     chi.NewRouter(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		config:     config,
	}

	// Recoverer is inside countRequests, so that panicking requests are counted as 500s.
	api.router.Use(requestID, countRequests, middleware.Recoverer)

	api.router.Get("/healthz", api.Health)
	api.router.Handle("/metrics", promhttp.Handler())

	api.router.Route("/api", func(router chi.Router) {
		router.Get("/countries", api.GetCountries)
		router.Get("/date-range", api.GetDateRange)
		router.Get("/metrics", api.GetLatestMetrics)
		router.Get("/trends", api.GetTrend)
		router.Get("/totals", api.GetPeriodTotals)
		router.Get("/export.csv", api.ExportCSV)
		router.Get("/export.xlsx", api.ExportXLSX)
	})

	return api
}

func (api DashboardAPI) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	api.router.ServeHTTP(res, req)
}

// Blocks until the server stops or ctx is cancelled, in which case the server is given some time
// to finish in-flight requests.
func (api DashboardAPI) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", api.config.Port),
		Handler:           api.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
