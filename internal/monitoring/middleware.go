// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

import (
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/agencyos/portal/internal/logging"
)

type Middleware struct {
	monitor MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(monitor MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		monitor: monitor,
		logger:  logger,
	}
}

// ResponseTime records per-route response time, tagged with the matched chi
// route pattern and the final status code.
func (m *Middleware) ResponseTime() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			tags := map[string]string{
				"route":  route,
				"method": r.Method,
				"status": fmt.Sprint(ww.Status()),
			}

			if err := m.monitor.SetResponseTimeMetric(tags, time.Since(start).Seconds()); err != nil {
				m.logger.Errorf("failed to set response time metric: %v", err)
			}
		})
	}
}
