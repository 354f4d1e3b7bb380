package batch

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/assemble"
	"github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/errs"
	"github.com/hamzam170763/pdf-compressor/internal/report"
)

// Uploader pushes a finished output file to a remote result sink.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Driver walks the working set and feeds each document to the assembler.
// Documents are processed sequentially; parallelism lives inside the
// assembler at page granularity.
type Driver struct {
	cfg       config.Config
	assembler *assemble.Assembler
	uploader  Uploader // optional
}

// New creates a batch driver. uploader may be nil.
func New(cfg config.Config, a *assemble.Assembler, uploader Uploader) *Driver {
	return &Driver{cfg: cfg, assembler: a, uploader: uploader}
}

// Run processes every input and returns the run summary. A single
// document's failure never aborts the batch; only a missing output sink or
// cancellation does. The summary is returned even alongside an error.
func (d *Driver) Run(ctx context.Context) (*report.RunSummary, error) {
	summary := &report.RunSummary{
		RunID:     uuid.NewString(),
		OutputDir: d.cfg.Paths.OutputDir,
	}

	// Create-if-absent and tolerant of concurrent creators.
	if err := os.MkdirAll(d.cfg.Paths.OutputDir, 0o755); err != nil {
		return summary, &errs.ResourceError{Op: "create output dir", Path: d.cfg.Paths.OutputDir, Err: err}
	}

	inputs, err := ListInputs(d.cfg.Paths.InputDir, d.cfg.Paths.OutputSuffix)
	if err != nil {
		return summary, &errs.ResourceError{Op: "scan input dir", Path: d.cfg.Paths.InputDir, Err: err}
	}

	log.Info().
		Str("run_id", summary.RunID).
		Int("files", len(inputs)).
		Str("input_dir", d.cfg.Paths.InputDir).
		Str("output_dir", d.cfg.Paths.OutputDir).
		Msg("batch run starting")

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			log.Warn().Str("run_id", summary.RunID).Msg("batch run cancelled")
			return summary, err
		}

		res := d.assembler.CompressFile(ctx, input)
		summary.Add(res)

		if res.Status == assemble.StatusSuccess && d.uploader != nil {
			if _, uerr := d.uploader.Upload(ctx, res.OutputPath); uerr != nil {
				log.Warn().Err(uerr).Str("file", res.OutputPath).Msg("result upload failed")
			}
		}
	}

	log.Info().
		Str("run_id", summary.RunID).
		Int("processed", summary.FilesProcessed).
		Int("succeeded", summary.FilesSucceeded).
		Int("skipped", summary.FilesSkipped).
		Int("failed", summary.FilesFailed).
		Int64("saved_bytes", summary.SpaceSaved()).
		Msg("batch run finished")

	return summary, nil
}

// ExitError reports whether the finished run should produce a non-zero exit:
// at least one document was attempted and none succeeded.
func ExitError(s *report.RunSummary) error {
	attempted := s.FilesProcessed - s.FilesSkipped
	if attempted > 0 && s.FilesSucceeded == 0 {
		return fmt.Errorf("no documents compressed successfully (%d attempted)", attempted)
	}
	return nil
}
