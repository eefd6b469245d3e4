package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/inovacc/petgallery/internal/common"
	"github.com/inovacc/petgallery/internal/model"
)

// ExportExtension is appended to every saved title regardless of the image format
const ExportExtension = ".jpg"

// ImageFetcher retrieves the bytes of one image
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Saver stores one exported file
type Saver interface {
	Save(name string, data []byte) (string, error)
}

// ExportFileName is the file name used for a pet
func ExportFileName(p model.Pet) string {
	return p.Title + ExportExtension
}

// ItemResult is the outcome of exporting one pet
type ItemResult struct {
	Pet      model.Pet
	FileName string
	Path     string // where the file was written, empty on failure
	Bytes    int
	Err      error
	Duration time.Duration
}

// Success reports whether the item was saved
func (r ItemResult) Success() bool { return r.Err == nil }

// ExportBatch tracks the items dispatched by one DownloadSelected call.
// It carries no aggregate outcome; each item reports on its own.
type ExportBatch struct {
	ID    string
	Total int

	events chan ItemResult
	done   chan struct{}
}

// Events delivers one ItemResult per item in completion order, then closes.
// Reading it is optional.
func (b *ExportBatch) Events() <-chan ItemResult {
	return b.events
}

// Wait blocks until every item has finished
func (b *ExportBatch) Wait() {
	<-b.done
}

// Done is closed when every item has finished
func (b *ExportBatch) Done() <-chan struct{} {
	return b.done
}

// Exporter turns a selection into per-item retrieve-and-save work
type Exporter struct {
	Images ImageFetcher
	Saver  Saver
	Logger *slog.Logger

	// Parallel bounds concurrent items; 0 runs every item at once
	Parallel int
}

// DownloadSelected starts one independent unit of work per selected pet and
// returns immediately. A failing item is logged and does not affect the others.
func (e *Exporter) DownloadSelected(ctx context.Context, pets []model.Pet, sel *Selection) *ExportBatch {
	targets := sel.Pick(pets)

	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	batch := &ExportBatch{
		ID:     uuid.New().String(),
		Total:  len(targets),
		events: make(chan ItemResult, len(targets)),
		done:   make(chan struct{}),
	}

	logger = logger.With(slog.String("batch_id", batch.ID))
	logger.Info("export started", slog.Int("items", batch.Total))

	var g errgroup.Group
	if e.Parallel > 0 {
		g.SetLimit(e.Parallel)
	}

	go func() {
		for _, p := range targets {
			g.Go(func() error {
				result := e.exportOne(ctx, p)

				if result.Err != nil {
					logger.Error("export item failed",
						slog.String("title", p.Title),
						slog.String("url", common.SanitizeURL(p.ImageURL)),
						slog.String("error", result.Err.Error()),
					)
				} else {
					logger.Debug("export item saved",
						slog.String("title", p.Title),
						slog.String("path", result.Path),
						slog.Int("bytes", result.Bytes),
					)
				}

				batch.events <- result

				// per-item failures are never propagated
				return nil
			})
		}

		_ = g.Wait()

		close(batch.events)
		close(batch.done)

		logger.Info("export finished", slog.Int("items", batch.Total))
	}()

	return batch
}

func (e *Exporter) exportOne(ctx context.Context, p model.Pet) ItemResult {
	start := time.Now()

	result := ItemResult{
		Pet:      p,
		FileName: ExportFileName(p),
	}

	data, err := e.Images.FetchImage(ctx, p.ImageURL)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)

		return result
	}

	path, err := e.Saver.Save(result.FileName, data)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)

		return result
	}

	result.Path = path
	result.Bytes = len(data)
	result.Duration = time.Since(start)

	return result
}
