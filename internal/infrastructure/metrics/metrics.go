package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contadores e histogramas de la resolución RBAC y de las asignaciones.
type Metrics struct {
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec
	AssignmentsTotal   *prometheus.CounterVec
	HTTPRequestsTotal  *prometheus.CounterVec
}

// New crea y registra las métricas en registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accesos_rbac_resolutions_total",
				Help: "Resoluciones de contexto RBAC por nivel de acceso",
			},
			[]string{"access_level"},
		),
		ResolutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "accesos_rbac_resolution_duration_seconds",
				Help:    "Duración de la resolución de permisos y menús",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		AssignmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accesos_rbac_assignments_total",
				Help: "Reemplazos de asignaciones por asociación y resultado",
			},
			[]string{"association", "outcome"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accesos_http_requests_total",
				Help: "Peticiones HTTP por método, ruta y status",
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(
		m.ResolutionsTotal,
		m.ResolutionDuration,
		m.AssignmentsTotal,
		m.HTTPRequestsTotal,
	)
	return m
}

// ObserveResolution registra una resolución completa para el nivel dado.
func (m *Metrics) ObserveResolution(accessLevel string) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(accessLevel).Inc()
}

// ObserveStage mide la duración de una etapa (roles, permissions, menus) desde start.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.ResolutionDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// ObserveAssignment cuenta un reemplazo; outcome es "ok" o "error".
func (m *Metrics) ObserveAssignment(association string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AssignmentsTotal.WithLabelValues(association, outcome).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
