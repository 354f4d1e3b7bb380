package assemble

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/inspect"
	"github.com/hamzam170763/pdf-compressor/internal/metrics"
	"github.com/hamzam170763/pdf-compressor/internal/pdfcheck"
	"github.com/hamzam170763/pdf-compressor/internal/render"
)

// Assembler orchestrates per-page processing for one document and emits one
// compressed output document. It never opens the input for writing.
type Assembler struct {
	cfg       config.Config
	inspector *inspect.Inspector
	renderers []render.Renderer
}

// New creates a document assembler over the given renderer chain.
func New(cfg config.Config, inspector *inspect.Inspector, renderers []render.Renderer) *Assembler {
	return &Assembler{cfg: cfg, inspector: inspector, renderers: renderers}
}

// OutputPath returns where the compressed counterpart of inputPath goes.
func (a *Assembler) OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(a.cfg.Paths.OutputDir, stem+a.cfg.Paths.OutputSuffix+ext)
}

// CompressFile processes one document end to end. It always returns a
// result; document-level failures are captured in it rather than returned,
// so a batch can continue past them.
func (a *Assembler) CompressFile(ctx context.Context, inputPath string) *CompressionResult {
	res := &CompressionResult{InputPath: inputPath}

	info, err := os.Stat(inputPath)
	if err != nil {
		return a.failed(res, fmt.Errorf("stat input: %w", err))
	}
	res.OriginalBytes = info.Size()

	ok, err := pdfcheck.IsPDF(inputPath)
	if err != nil {
		return a.failed(res, err)
	}
	if !ok {
		return a.skipped(res, "not a valid PDF")
	}

	content, err := a.inspector.Inspect(inputPath)
	if err != nil {
		return a.failed(res, err)
	}
	if len(content.Pages) == 0 {
		return a.skipped(res, "document has no pages")
	}

	log.Info().Str("file", inputPath).Int("pages", len(content.Pages)).Msg("compressing document")

	workdir, err := os.MkdirTemp("", "pdfc-"+uuid.NewString()[:8]+"-*")
	if err != nil {
		return a.failed(res, fmt.Errorf("create workdir: %w", err))
	}
	defer os.RemoveAll(workdir)

	pagePaths, err := a.processPages(ctx, inputPath, workdir, content.Pages)
	if err != nil {
		return a.failed(res, err)
	}

	assembled := filepath.Join(workdir, "assembled.pdf")
	if len(pagePaths) == 1 {
		assembled = pagePaths[0]
	} else {
		if err := api.MergeCreateFile(pagePaths, assembled, false, nil); err != nil {
			return a.failed(res, fmt.Errorf("merge pages: %w", err))
		}
	}

	optimized := filepath.Join(workdir, "optimized.pdf")
	if err := api.OptimizeFile(assembled, optimized, nil); err != nil {
		log.Warn().Err(err).Str("file", inputPath).Msg("final optimize failed, using assembled document")
		optimized = assembled
	}

	if err := pdfcheck.Verify(optimized, len(content.Pages)); err != nil {
		return a.failed(res, fmt.Errorf("output verification: %w", err))
	}

	outPath := a.OutputPath(inputPath)
	size, err := moveIntoPlace(optimized, outPath)
	if err != nil {
		return a.failed(res, err)
	}

	res.OutputPath = outPath
	res.CompressedBytes = size
	res.Status = StatusSuccess
	metrics.IncDocument(res.Status.String())
	metrics.AddBytesSaved(res.SavedBytes())

	log.Info().
		Str("file", inputPath).
		Str("output", outPath).
		Int64("original_bytes", res.OriginalBytes).
		Int64("compressed_bytes", res.CompressedBytes).
		Float64("ratio", res.Ratio()).
		Msg("document compressed")

	return res
}

func (a *Assembler) failed(res *CompressionResult, err error) *CompressionResult {
	res.Status = StatusFailed
	res.ErrorDetail = err.Error()
	metrics.IncDocument(res.Status.String())
	log.Error().Err(err).Str("file", res.InputPath).Msg("document failed")
	return res
}

func (a *Assembler) skipped(res *CompressionResult, reason string) *CompressionResult {
	res.Status = StatusSkipped
	res.ErrorDetail = reason
	metrics.IncDocument(res.Status.String())
	log.Info().Str("file", res.InputPath).Str("reason", reason).Msg("document skipped")
	return res
}

// moveIntoPlace copies src into the output directory under a temporary name
// and renames it to dst only once the copy is complete, so an interrupted
// run never leaves a valid-looking partial output. Returns the final size.
func moveIntoPlace(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open assembled output: %w", err)
	}
	defer in.Close()

	tmp := dst + ".partial-" + uuid.NewString()[:8]
	out, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("write output: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("finalize output: %w", err)
	}
	return n, nil
}
