package photos

import (
	"bytes"
	"context"
	"io"
	"time"

	"datenight/internal/restaurant"
	"datenight/internal/storage"

	"go.uber.org/zap"
)

// Placeholder is stored for restaurants whose site yields no usable image.
const Placeholder = "/images/restaurant-placeholder.jpg"

const DefaultEvery = 25

type ImageFinder interface {
	ImageURL(ctx context.Context, pageURL string) (string, error)
}

type Downloader interface {
	Download(ctx context.Context, imageURL string) ([]byte, string, error)
}

// Uploader mirrors an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Options struct {
	CheckpointPath string
	// Every is how many processed records trigger a checkpoint.
	Every int
	// OnCheckpoint persists the records processed so far, typically by
	// rewriting the data file.
	OnCheckpoint func(records []*restaurant.Restaurant, cp Checkpoint) error
	// Downloader and Uploader are both needed to mirror images.
	Downloader Downloader
	Uploader   Uploader
	Now        func() time.Time
}

type Backfiller struct {
	finder ImageFinder
	opts   Options
	logger *zap.Logger
}

func NewBackfiller(finder ImageFinder, opts Options, logger *zap.Logger) *Backfiller {
	if opts.Every <= 0 {
		opts.Every = DefaultEvery
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backfiller{finder: finder, opts: opts, logger: logger}
}

// NeedsPhoto reports whether r has no real photo yet.
func NeedsPhoto(r *restaurant.Restaurant) bool {
	for _, p := range r.Photos {
		if p != "" && p != Placeholder {
			return false
		}
	}
	return true
}

// Run fills photos for records in place, resuming an interrupted run over
// the same records. Per-record failures are logged and leave a placeholder;
// only checkpoint persistence errors and cancellation stop the run. A
// completed run removes its checkpoint.
func (b *Backfiller) Run(ctx context.Context, records []*restaurant.Restaurant) (Checkpoint, error) {
	cp, err := LoadCheckpoint(b.opts.CheckpointPath)
	if err != nil {
		return cp, err
	}

	fingerprint := Fingerprint(records)
	switch {
	case cp == (Checkpoint{}):
	case cp.Fingerprint != fingerprint || cp.Total != len(records) || cp.NextIndex > len(records):
		b.logger.Warn("[PHOTOS] checkpoint is for a different record list, starting over",
			zap.String("checkpoint", b.opts.CheckpointPath),
			zap.Int("checkpoint_total", cp.Total),
			zap.Int("records", len(records)),
		)
		cp = Checkpoint{}
	default:
		b.logger.Info("[PHOTOS] resuming from checkpoint", zap.Int("index", cp.NextIndex))
	}
	cp.Fingerprint = fingerprint
	cp.Total = len(records)

	processed := 0
	for i := cp.NextIndex; i < len(records); i++ {
		if err := ctx.Err(); err != nil {
			return cp, err
		}

		b.process(ctx, records[i], &cp)
		cp.NextIndex = i + 1
		processed++

		if processed%b.opts.Every == 0 {
			if err := b.checkpoint(records, &cp); err != nil {
				return cp, err
			}
		}
	}

	if err := b.finish(records, &cp); err != nil {
		return cp, err
	}
	b.logger.Info("[PHOTOS] backfill complete",
		zap.Int("found", cp.Found),
		zap.Int("failed", cp.Failed),
		zap.Int("skipped", cp.Skipped),
		zap.Int("mirrored", cp.Mirrored),
	)
	return cp, nil
}

func (b *Backfiller) process(ctx context.Context, r *restaurant.Restaurant, cp *Checkpoint) {
	if !NeedsPhoto(r) {
		cp.Skipped++
		return
	}
	if r.Website == "" {
		r.Photos = []string{Placeholder}
		cp.Skipped++
		return
	}

	img, err := b.finder.ImageURL(ctx, r.Website)
	if err != nil {
		b.logger.Warn("[PHOTOS] no image, using placeholder",
			zap.String("restaurant", r.Name),
			zap.String("website", r.Website),
			zap.Error(err),
		)
		r.Photos = []string{Placeholder}
		cp.Failed++
		return
	}

	if mirrored, ok := b.mirror(ctx, r, img); ok {
		img = mirrored
		cp.Mirrored++
	}
	r.Photos = []string{img}
	cp.Found++
}

// mirror copies img into object storage. Failures keep the source URL.
func (b *Backfiller) mirror(ctx context.Context, r *restaurant.Restaurant, img string) (string, bool) {
	if b.opts.Downloader == nil || b.opts.Uploader == nil {
		return "", false
	}

	data, contentType, err := b.opts.Downloader.Download(ctx, img)
	if err != nil {
		b.logger.Warn("[PHOTOS] download failed", zap.String("image", img), zap.Error(err))
		return "", false
	}

	key := storage.ObjectKey("photos", r.Slug, contentType, img)
	url, err := b.opts.Uploader.Upload(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		b.logger.Warn("[PHOTOS] upload failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return url, true
}

func (b *Backfiller) checkpoint(records []*restaurant.Restaurant, cp *Checkpoint) error {
	if err := b.persist(records, cp); err != nil {
		return err
	}
	if err := SaveCheckpoint(b.opts.CheckpointPath, *cp); err != nil {
		return err
	}
	b.logger.Debug("[PHOTOS] checkpoint", zap.Int("next_index", cp.NextIndex))
	return nil
}

// finish persists the records one last time and drops the checkpoint so the
// next run starts from the first record.
func (b *Backfiller) finish(records []*restaurant.Restaurant, cp *Checkpoint) error {
	if err := b.persist(records, cp); err != nil {
		return err
	}
	return RemoveCheckpoint(b.opts.CheckpointPath)
}

func (b *Backfiller) persist(records []*restaurant.Restaurant, cp *Checkpoint) error {
	cp.UpdatedAt = b.opts.Now()
	if b.opts.OnCheckpoint != nil {
		return b.opts.OnCheckpoint(records, *cp)
	}
	return nil
}
