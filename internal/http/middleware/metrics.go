package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RequestObserver — часть internal/metrics, нужная HTTP-слою.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, dur time.Duration)
	InFlight(delta float64)
}

// Metrics считает запросы в полёте и латентность по шаблону маршрута chi,
// чтобы id в пути не раздували кардинальность.
func Metrics(m RequestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.InFlight(1)
			defer m.InFlight(-1)

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			m.ObserveRequest(route, r.Method, sw.Status(), time.Since(start))
		})
	}
}
