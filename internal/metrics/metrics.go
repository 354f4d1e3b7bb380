package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pagesClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "pages_classified_total",
			Help:      "Pages classified by content class",
		},
		[]string{"class"},
	)

	renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "page_renders_total",
			Help:      "Page render attempts by backend and result",
		},
		[]string{"backend", "result"},
	)

	renderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pdfcompressor",
			Name:      "page_render_duration_seconds",
			Help:      "Duration of page render attempts by backend",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	fallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "render_fallbacks_total",
			Help:      "Pages that required the fallback encoder",
		},
	)

	passthroughs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "vector_passthroughs_total",
			Help:      "Pages carried through without rasterization",
		},
	)

	documents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "documents_processed_total",
			Help:      "Documents processed by result (success, skipped, failed)",
		},
		[]string{"result"},
	)

	bytesSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "bytes_saved_total",
			Help:      "Cumulative bytes saved across successful documents",
		},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(pagesClassified, renders, renderLatency, fallbacks, passthroughs, documents, bytesSaved)
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func IncClassified(class string) { pagesClassified.WithLabelValues(class).Inc() }

func ObserveRender(backend, result string, dur time.Duration) {
	renders.WithLabelValues(backend, result).Inc()
	renderLatency.WithLabelValues(backend).Observe(dur.Seconds())
}

func IncFallback()    { fallbacks.Inc() }
func IncPassthrough() { passthroughs.Inc() }

func IncDocument(result string) { documents.WithLabelValues(result).Inc() }

func AddBytesSaved(n int64) {
	if n > 0 {
		bytesSaved.Add(float64(n))
	}
}
