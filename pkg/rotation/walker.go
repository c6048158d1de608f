package rotation

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrot/pkg/appcontext"
)

// Report summarizes a directory sweep. Jobs are kept in file listing order.
type Report struct {
	Jobs    []CompressorJob
	Checked int
	Rotated int
	Failed  int
}

func (r *Report) Add(result Result) {
	if result.Outcome != OutcomeIgnored {
		r.Checked++
	}
	if result.Outcome.Moved() {
		r.Rotated++
	}
	if result.Outcome.Failed() {
		r.Failed++
	}

	r.Jobs = append(r.Jobs, result.Jobs...)
}

func (r *Report) Merge(other Report) {
	r.Jobs = append(r.Jobs, other.Jobs...)
	r.Checked += other.Checked
	r.Rotated += other.Rotated
	r.Failed += other.Failed
}

type fileProcessor interface {
	Process(ctx context.Context, now time.Time, config RotationConfig, interval, fullPath string, currentSize int64) Result
}

type Walker struct {
	logger    logrus.FieldLogger
	processor fileProcessor
}

func NewWalker(logger logrus.FieldLogger, processor fileProcessor) *Walker {
	return &Walker{
		logger:    logger,
		processor: processor,
	}
}

// ProcessDirectory runs the rotation pipeline over every regular file
// directly inside dir. Symbolic links, directories and special files are
// skipped.
func (w *Walker) ProcessDirectory(ctx context.Context, now time.Time, resolver *Resolver, interval, dir string) (Report, error) {
	var report Report

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, errors.Wrapf(err, "unable to list directory %s", dir)
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		info, err := os.Lstat(fullPath)
		if err != nil {
			appcontext.LoggerFromContext(w.logger, appcontext.WithFile(ctx, fullPath)).
				WithError(err).Warn("Unable to stat file, skipping")
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		result := w.processor.Process(ctx, now, resolver.Resolve(entry.Name()), interval, fullPath, info.Size())
		report.Add(result)
	}

	return report, nil
}
