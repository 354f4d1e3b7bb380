package assemble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/classify"
	"github.com/hamzam170763/pdf-compressor/internal/errs"
	"github.com/hamzam170763/pdf-compressor/internal/inspect"
	"github.com/hamzam170763/pdf-compressor/internal/metrics"
	"github.com/hamzam170763/pdf-compressor/internal/plan"
	"github.com/hamzam170763/pdf-compressor/internal/render"
)

type pageJob struct {
	idx     int
	content inspect.PageContent
}

type pageResult struct {
	idx  int
	path string
	err  error
}

// processPages runs the per-page pipeline across a bounded worker pool and
// returns the single-page PDF paths in original page order. Pages are
// independent; only the final ordering matters.
func (a *Assembler) processPages(ctx context.Context, srcPath, workdir string, pages []inspect.PageContent) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := a.cfg.Worker.PageConcurrency
	if workers > len(pages) {
		workers = len(pages)
	}

	jobs := make(chan pageJob, len(pages))
	results := make(chan pageResult, len(pages))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if ctx.Err() != nil {
					results <- pageResult{idx: job.idx, err: ctx.Err()}
					continue
				}
				path, err := a.processPage(ctx, srcPath, workdir, job.content)
				results <- pageResult{idx: job.idx, path: path, err: err}
			}
		}()
	}

	for i, pc := range pages {
		jobs <- pageJob{idx: i, content: pc}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]string, len(pages))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("page %d: %w", res.idx+1, res.err)
				cancel()
			}
			continue
		}
		ordered[res.idx] = res.path
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return ordered, nil
}

// processPage turns one page into a single-page PDF inside workdir: either a
// re-encoded raster sized to the original page, or the original page carried
// through unchanged when rasterization is not wanted or not possible.
func (a *Assembler) processPage(ctx context.Context, srcPath, workdir string, pc inspect.PageContent) (string, error) {
	pagePDF := filepath.Join(workdir, fmt.Sprintf("page_%05d.pdf", pc.Index))

	cls, err := classify.Classify(pc, a.cfg.Compression)
	if err != nil {
		// Geometry too broken to plan for; keep the page as-is.
		log.Warn().Err(err).Str("file", srcPath).Int("page", pc.Index+1).Msg("unclassifiable page, carrying through")
		return pagePDF, a.passthroughPage(srcPath, pagePDF, pc.Index+1)
	}
	metrics.IncClassified(cls.Kind.String())

	p := plan.Select(cls, a.cfg.Compression)

	log.Debug().
		Str("file", srcPath).
		Int("page", pc.Index+1).
		Str("class", cls.Kind.String()).
		Float64("text_ratio", cls.TextRatio).
		Float64("image_ratio", cls.ImageRatio).
		Str("format", p.Format.String()).
		Int("dpi", p.TargetDPI).
		Msg("planned page")

	// Pages without raster content keep their drawing operators; turning
	// pure vector/text into pixels usually inflates the result.
	if len(pc.ImageRects) == 0 {
		if err := a.passthroughPage(srcPath, pagePDF, pc.Index+1); err == nil {
			metrics.IncPassthrough()
			return pagePDF, nil
		} else {
			log.Warn().Err(err).Int("page", pc.Index+1).Msg("passthrough failed, rasterizing instead")
		}
	}

	raster, rerr := a.renderPage(ctx, srcPath, pc.Index, p)
	if rerr != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// Last resort: the original page bytes, unmodified. Never drop a page.
		log.Error().Err(rerr).Str("file", srcPath).Int("page", pc.Index+1).Msg("all render paths failed, carrying original page")
		return pagePDF, a.passthroughPage(srcPath, pagePDF, pc.Index+1)
	}

	rasterPath := filepath.Join(workdir, fmt.Sprintf("page_%05d%s", pc.Index, raster.Format.Ext()))
	if err := os.WriteFile(rasterPath, raster.Data, 0o644); err != nil {
		return "", fmt.Errorf("write raster: %w", err)
	}

	if err := importRasterPage(rasterPath, pagePDF, pc.Width, pc.Height); err != nil {
		return "", fmt.Errorf("embed raster: %w", err)
	}
	return pagePDF, nil
}

// renderPage walks the renderer chain, falling through on RenderError.
func (a *Assembler) renderPage(ctx context.Context, srcPath string, pageIndex int, p plan.CompressionPlan) (*render.Raster, error) {
	pctx, cancel := context.WithTimeout(ctx, a.cfg.Render.PageTimeout)
	defer cancel()

	var lastErr error
	for i, r := range a.renderers {
		start := time.Now()
		raster, err := r.Render(pctx, srcPath, pageIndex, p)
		dur := time.Since(start)

		if err == nil {
			metrics.ObserveRender(r.Name(), "success", dur)
			if i > 0 {
				metrics.IncFallback()
				log.Info().Str("file", srcPath).Int("page", pageIndex+1).Str("backend", r.Name()).Msg("fallback encoder succeeded")
			}
			return raster, nil
		}

		if pctx.Err() != nil {
			metrics.ObserveRender(r.Name(), "timeout", dur)
			return nil, pctx.Err()
		}

		metrics.ObserveRender(r.Name(), "error", dur)
		log.Warn().Err(err).Str("backend", r.Name()).Int("page", pageIndex+1).Msg("render attempt failed")
		lastErr = err
	}

	if lastErr == nil {
		lastErr = &errs.RenderError{Backend: "none", Page: pageIndex + 1, Err: fmt.Errorf("no renderers configured")}
	}
	return nil, lastErr
}

// passthroughPage extracts page pageNum (1-based) from srcPath into a
// standalone PDF, preserving its drawing operators.
func (a *Assembler) passthroughPage(srcPath, outPath string, pageNum int) error {
	if err := api.TrimFile(srcPath, outPath, []string{strconv.Itoa(pageNum)}, nil); err != nil {
		return fmt.Errorf("extract page %d: %w", pageNum, err)
	}
	// Best effort: squeeze the extracted page's object tree.
	if err := api.OptimizeFile(outPath, "", nil); err != nil {
		log.Debug().Err(err).Int("page", pageNum).Msg("single page optimize failed")
	}
	return nil
}

// importRasterPage wraps one encoded page image into a single-page PDF with
// the original page dimensions, the image stretched edge to edge.
func importRasterPage(rasterPath, outPath string, widthPt, heightPt float64) error {
	desc := fmt.Sprintf("dim:%.2f %.2f, pos:full", widthPt, heightPt)
	imp, err := pdfcpu.ParseImportDetails(desc, types.POINTS)
	if err != nil {
		return fmt.Errorf("import details: %w", err)
	}
	if err := api.ImportImagesFile([]string{rasterPath}, outPath, imp, nil); err != nil {
		return fmt.Errorf("import image: %w", err)
	}
	return nil
}
