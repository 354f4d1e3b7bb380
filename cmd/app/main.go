package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/assemble"
	"github.com/hamzam170763/pdf-compressor/internal/batch"
	cfgpkg "github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/inspect"
	logpkg "github.com/hamzam170763/pdf-compressor/internal/logger"
	"github.com/hamzam170763/pdf-compressor/internal/metrics"
	"github.com/hamzam170763/pdf-compressor/internal/render"
	"github.com/hamzam170763/pdf-compressor/internal/report"
	"github.com/hamzam170763/pdf-compressor/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := cfgpkg.FromEnv()

	// CLI flags override the environment for the common knobs.
	dir := flag.String("dir", cfg.Paths.InputDir, "working directory to scan for PDFs")
	out := flag.String("out", cfg.Paths.OutputDir, "output directory for compressed PDFs")
	method := flag.String("method", cfg.Compression.Method, "rendering method: auto, primary or fallback")
	quality := flag.Int("quality", cfg.Compression.Quality, "JPEG quality (1-100)")
	dpi := flag.Int("dpi", cfg.Compression.DPI, "target rendering DPI")
	preserveText := flag.Bool("preserve-text", cfg.Compression.PreserveText, "keep text pages lossless")
	flag.Parse()

	cfg.Paths.InputDir = *dir
	cfg.Paths.OutputDir = *out
	cfg.Compression.Method = *method
	cfg.Compression.Quality = *quality
	cfg.Compression.DPI = *dpi
	cfg.Compression.PreserveText = *preserveText

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	_ = logpkg.Init(logpkg.Options{
		Level:        cfg.Logging.Level,
		Pretty:       cfg.Logging.Pretty,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		MaxAgeDays:   cfg.Logging.MaxAgeDays,
		Compress:     cfg.Logging.Compress,
		SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
		AxiomAPIKey:  cfg.Axiom.APIKey,
		AxiomOrgID:   cfg.Axiom.OrgID,
		AxiomDataset: cfg.Axiom.Dataset,
		AxiomFlush:   cfg.Axiom.FlushInterval,
	})
	defer logpkg.Close()

	metrics.Init()
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics listener up")
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error().Err(err).Msg("metrics listener error")
			}
		}()
	}

	renderers, err := render.Chain(cfg.Render, cfg.Compression.Method)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build renderer chain")
	}
	if err := render.Probe(); err != nil {
		log.Warn().Err(err).Msg("rendering backend unavailable; pages will be carried through unmodified")
	}

	inspector := inspect.New(cfg.Analysis)
	assembler := assemble.New(cfg, inspector, renderers)

	var uploader batch.Uploader
	if cfg.S3.Bucket != "" {
		sink, err := storage.NewResultSink(context.Background(), cfg.S3.Bucket, cfg.S3.Prefix)
		if err != nil {
			log.Warn().Err(err).Msg("S3 result sink unavailable, uploads disabled")
		} else {
			uploader = sink
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report.PrintBanner(os.Stdout, cfg.Compression.Method, cfg.Compression.Quality, cfg.Compression.DPI, cfg.Compression.PreserveText, cfg.Paths.OutputDir)

	driver := batch.New(cfg, assembler, uploader)
	summary, err := driver.Run(ctx)

	report.Print(os.Stdout, summary)

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := batch.ExitError(summary); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
