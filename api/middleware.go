package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"hermannm.dev/devlog/log"
)

const requestIDHeader = "X-Request-Id"

var requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "coviddash_http_requests_total",
	Help: "HTTP requests, by route pattern and response status.",
}, []string{"route", "status"})

// Like middleware.RequestID, but generates UUIDs and echoes the ID in the response. The ID is
// stored under middleware.RequestIDKey, so middleware.GetReqID can read it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		res.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(req.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(res, req.WithContext(ctx))
	})
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(res, req.ProtoMajor)
		next.ServeHTTP(wrapped, req)

		route := "unmatched"
		if routeContext := chi.RouteContext(req.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}

		requestCount.WithLabelValues(route, strconv.Itoa(status)).Inc()
		log.Debug(
			"handled request",
			slog.String("route", route),
			slog.Int("status", status),
			slog.String("requestId", middleware.GetReqID(req.Context())),
		)
	})
}
