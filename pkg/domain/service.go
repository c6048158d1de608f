package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrot/pkg/appcontext"
	"github.com/yurykabanov/logrot/pkg/rotation"
)

type SweepRepository interface {
	Create(context.Context, Sweep) (Sweep, error)
	Update(context.Context, Sweep) error
}

type directoryWalker interface {
	ProcessDirectory(ctx context.Context, now time.Time, resolver *rotation.Resolver, interval, dir string) (rotation.Report, error)
}

type compressorRunner interface {
	Run(ctx context.Context, jobs []rotation.CompressorJob)
}

// SweepService performs one sweep: every configured directory is walked
// first, compressors collected on the way are run afterwards in one batch.
type SweepService struct {
	logger logrus.FieldLogger

	repo        SweepRepository
	walker      directoryWalker
	compressors compressorRunner
	resolver    *rotation.Resolver

	paths []string
}

func NewSweepService(
	logger logrus.FieldLogger,
	repo SweepRepository,
	walker directoryWalker,
	compressors compressorRunner,
	resolver *rotation.Resolver,
	paths []string,
) *SweepService {
	return &SweepService{
		logger:      logger,
		repo:        repo,
		walker:      walker,
		compressors: compressors,
		resolver:    resolver,
		paths:       paths,
	}
}

func (s *SweepService) Sweep(ctx context.Context, interval string, now time.Time) (Sweep, error) {
	ctx = appcontext.WithInterval(ctx, interval)
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	sweep := Sweep{
		Interval:   interval,
		ExecStatus: ExecStatusStarted,
		StartedAt:  now,
	}

	created, err := s.repo.Create(ctx, sweep)
	if err != nil {
		// rotation must not depend on the journal being writable
		logger.WithError(err).Warn("Unable to record sweep start")
	} else {
		sweep = created
	}

	ctx = appcontext.WithSweepId(ctx, sweep.Id)
	logger = appcontext.LoggerFromContext(s.logger, ctx)

	logger.WithField("paths", len(s.paths)).Info("Starting sweep")

	var report rotation.Report
	failed := false

	for _, dir := range s.paths {
		r, err := s.walker.ProcessDirectory(ctx, now, s.resolver, interval, dir)
		if err != nil {
			logger.WithError(err).WithField("dir", dir).Error("Unable to sweep directory")
			failed = true
			continue
		}

		report.Merge(r)
	}

	s.compressors.Run(ctx, report.Jobs)

	finishedAt := time.Now()

	sweep.FilesChecked = report.Checked
	sweep.FilesRotated = report.Rotated
	sweep.FilesFailed = report.Failed
	sweep.CompressorJobs = len(report.Jobs)
	sweep.FinishedAt = &finishedAt
	sweep.ExecStatus = ExecStatusSuccess

	if failed || report.Failed > 0 {
		sweep.ExecStatus = ExecStatusFailure
	}

	logger.WithFields(logrus.Fields{
		"files_checked":   sweep.FilesChecked,
		"files_rotated":   sweep.FilesRotated,
		"files_failed":    sweep.FilesFailed,
		"compressor_jobs": sweep.CompressorJobs,
	}).Info("Sweep finished")

	if sweep.Id == 0 {
		return sweep, nil
	}

	err = s.repo.Update(ctx, sweep)
	if err != nil {
		return sweep, errors.Wrap(err, "unable to record sweep result")
	}

	return sweep, nil
}
