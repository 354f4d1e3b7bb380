package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamzam170763/pdf-compressor/internal/errs"
)

// Method names for the renderer chain.
const (
	MethodAuto     = "auto"
	MethodPrimary  = "primary"
	MethodFallback = "fallback"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AxiomConfig holds optional Axiom log forwarding configuration.
type AxiomConfig struct {
	Send          bool
	APIKey        string
	OrgID         string
	Dataset       string
	FlushInterval time.Duration
}

// CompressionConfig is the decision-engine surface: rendering method,
// encoding quality and sampling density, plus classification thresholds.
type CompressionConfig struct {
	Method       string
	Quality      int
	DPI          int
	PreserveText bool

	// Classification cutoffs on page-area coverage, all in [0,1].
	// A page is text-dominant when text coverage >= TextRatioMin and
	// image coverage < ImageRatioCeil; image-dominant when image coverage
	// >= ImageRatioMin and text coverage < TextRatioCeil; mixed otherwise.
	TextRatioMin   float64
	ImageRatioCeil float64
	ImageRatioMin  float64
	TextRatioCeil  float64
}

// AnalysisConfig controls the raster page inspection pass.
type AnalysisConfig struct {
	DPI                float64
	BinaryThreshold    uint8
	MinComponentPixels int
	MinImageSizeCM     float64
}

// RenderConfig bounds the renderer's resource use.
type RenderConfig struct {
	MaxRasterDim    int
	PageTimeout     time.Duration
	FallbackDPI     int
	FallbackQuality int
}

// WorkerConfig defines per-document page parallelism.
type WorkerConfig struct {
	PageConcurrency int
}

// PathsConfig defines the input working directory and the output sink.
type PathsConfig struct {
	InputDir     string
	OutputDir    string
	OutputSuffix string
}

// S3Config enables uploading compressed outputs to a bucket when set.
type S3Config struct {
	Bucket string
	Prefix string
}

// MetricsConfig exposes a Prometheus listener when Addr is set.
type MetricsConfig struct {
	Addr string
}

// Config is the top-level configuration. It is built once at process start
// and passed by value; nothing mutates it afterwards.
type Config struct {
	Logging     LoggingConfig
	Axiom       AxiomConfig
	Compression CompressionConfig
	Analysis    AnalysisConfig
	Render      RenderConfig
	Worker      WorkerConfig
	Paths       PathsConfig
	S3          S3Config
	Metrics     MetricsConfig
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", "logs/pdfcompressor.log"),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	baseDataset := getEnv("AXIOM_DATASET", "dev")
	cfg.Axiom = AxiomConfig{
		Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
		APIKey:        getEnv("AXIOM_API_KEY", ""),
		OrgID:         getEnv("AXIOM_ORG_ID", ""),
		Dataset:       baseDataset + "_pdfcompressor",
		FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
	}

	cfg.Compression = CompressionConfig{
		Method:         strings.ToLower(getEnv("COMPRESS_METHOD", MethodAuto)),
		Quality:        parseInt(getEnv("COMPRESS_QUALITY", "80"), 80),
		DPI:            parseInt(getEnv("COMPRESS_DPI", "300"), 300),
		PreserveText:   parseBool(getEnv("PRESERVE_TEXT", "true")),
		TextRatioMin:   parseFloat(getEnv("TEXT_RATIO_MIN", "0.5"), 0.5),
		ImageRatioCeil: parseFloat(getEnv("IMAGE_RATIO_CEIL", "0.3"), 0.3),
		ImageRatioMin:  parseFloat(getEnv("IMAGE_RATIO_MIN", "0.5"), 0.5),
		TextRatioCeil:  parseFloat(getEnv("TEXT_RATIO_CEIL", "0.3"), 0.3),
	}

	cfg.Analysis = AnalysisConfig{
		DPI:                parseFloat(getEnv("ANALYSIS_DPI", "150"), 150),
		BinaryThreshold:    parseByte(getEnv("ANALYSIS_THRESHOLD", "200"), 200),
		MinComponentPixels: parseInt(getEnv("ANALYSIS_MIN_COMPONENT_PX", "100"), 100),
		MinImageSizeCM:     parseFloat(getEnv("ANALYSIS_MIN_IMAGE_CM", "2.0"), 2.0),
	}

	cfg.Render = RenderConfig{
		MaxRasterDim:    parseInt(getEnv("RENDER_MAX_RASTER_DIM", "10000"), 10000),
		PageTimeout:     parseDuration(getEnv("RENDER_PAGE_TIMEOUT", "60s"), 60*time.Second),
		FallbackDPI:     parseInt(getEnv("RENDER_FALLBACK_DPI", "150"), 150),
		FallbackQuality: parseInt(getEnv("RENDER_FALLBACK_QUALITY", "70"), 70),
	}

	cfg.Worker = WorkerConfig{
		PageConcurrency: parseInt(getEnv("PAGE_CONCURRENCY", "4"), 4),
	}

	cfg.Paths = PathsConfig{
		InputDir:     getEnv("INPUT_DIR", "."),
		OutputDir:    getEnv("OUTPUT_DIR", "compressed_pdfs"),
		OutputSuffix: getEnv("OUTPUT_SUFFIX", "_compressed"),
	}

	cfg.S3 = S3Config{
		Bucket: getEnv("S3_RESULT_BUCKET", ""),
		Prefix: getEnv("S3_RESULT_PREFIX", "compressed"),
	}

	cfg.Metrics = MetricsConfig{
		Addr: getEnv("METRICS_ADDR", ""),
	}

	return cfg
}

// Validate rejects configuration the run cannot start with.
func (c Config) Validate() error {
	switch c.Compression.Method {
	case MethodAuto, MethodPrimary, MethodFallback:
	default:
		return &errs.ConfigError{Field: "method", Reason: fmt.Sprintf("unknown method %q", c.Compression.Method)}
	}
	if c.Compression.Quality < 1 || c.Compression.Quality > 100 {
		return &errs.ConfigError{Field: "quality", Reason: fmt.Sprintf("must be in [1,100], got %d", c.Compression.Quality)}
	}
	if c.Compression.DPI <= 0 {
		return &errs.ConfigError{Field: "dpi", Reason: fmt.Sprintf("must be > 0, got %d", c.Compression.DPI)}
	}
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"text_ratio_min", c.Compression.TextRatioMin},
		{"image_ratio_ceil", c.Compression.ImageRatioCeil},
		{"image_ratio_min", c.Compression.ImageRatioMin},
		{"text_ratio_ceil", c.Compression.TextRatioCeil},
	} {
		if r.v < 0 || r.v > 1 {
			return &errs.ConfigError{Field: r.name, Reason: fmt.Sprintf("must be in [0,1], got %g", r.v)}
		}
	}
	if c.Analysis.DPI <= 0 {
		return &errs.ConfigError{Field: "analysis_dpi", Reason: "must be > 0"}
	}
	if c.Render.MaxRasterDim <= 0 {
		return &errs.ConfigError{Field: "render_max_raster_dim", Reason: "must be > 0"}
	}
	if c.Render.FallbackQuality < 1 || c.Render.FallbackQuality > 100 {
		return &errs.ConfigError{Field: "render_fallback_quality", Reason: "must be in [1,100]"}
	}
	if c.Worker.PageConcurrency < 1 {
		return &errs.ConfigError{Field: "page_concurrency", Reason: "must be >= 1"}
	}
	if c.Paths.OutputDir == "" {
		return &errs.ConfigError{Field: "output_dir", Reason: "must not be empty"}
	}
	if c.Paths.OutputSuffix == "" {
		return &errs.ConfigError{Field: "output_suffix", Reason: "must not be empty"}
	}
	return nil
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func parseByte(s string, def uint8) uint8 {
	v := parseInt(s, int(def))
	if v < 0 || v > 255 {
		return def
	}
	return uint8(v)
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
