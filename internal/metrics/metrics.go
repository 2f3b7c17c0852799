// Package metrics counts store operations with Prometheus collectors.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "gophcloud"

// Operation outcomes used as the status label.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Metrics struct {
	uploads     *prometheus.CounterVec
	uploadBytes *prometheus.CounterVec
	deletes     *prometheus.CounterVec
	auth        *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		uploads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Total number of uploads by media kind and outcome",
		}, []string{"kind", "status"}),
		uploadBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Total bytes of successfully uploaded media",
		}, []string{"kind"}),
		deletes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "Total number of delete operations by outcome",
		}, []string{"status"}),
		auth: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_total",
			Help:      "Total number of session operations by kind and outcome",
		}, []string{"op", "status"}),
	}
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

// Upload records an upload of size bytes. Bytes are counted only on success.
func (m *Metrics) Upload(kind string, size int64, err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(kind, status(err)).Inc()
	if err == nil {
		m.uploadBytes.WithLabelValues(kind).Add(float64(size))
	}
}

func (m *Metrics) Delete(err error) {
	if m == nil {
		return
	}
	m.deletes.WithLabelValues(status(err)).Inc()
}

// Auth records a session operation such as "login", "register" or "logout".
func (m *Metrics) Auth(op string, err error) {
	if m == nil {
		return
	}
	m.auth.WithLabelValues(op, status(err)).Inc()
}

// Snapshot renders every counter and gauge gathered from g as sorted
// "name{labels} value" lines. Only families with the gophcloud prefix are
// included.
func Snapshot(g prometheus.Gatherer) ([]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	lines := make([]string, 0)
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			var v float64
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				v = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				v = m.GetGauge().GetValue()
			default:
				continue
			}
			lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), formatLabels(m.GetLabel()), v))
		}
	}
	sort.Strings(lines)
	return lines, nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
