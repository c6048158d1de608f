package domainfx

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"github.com/yurykabanov/logrot/pkg/command"
	"github.com/yurykabanov/logrot/pkg/domain"
	"github.com/yurykabanov/logrot/pkg/rotation"
	"github.com/yurykabanov/logrot/pkg/transfer"
)

// ProgressWriter is where per-file progress lines are printed.
type ProgressWriter io.Writer

func ProgressWriterProvider(config *SweepConfig) ProgressWriter {
	if config.Quiet {
		return ioutil.Discard
	}
	return os.Stdout
}

func NewCron() *cron.Cron {
	return cron.New()
}

func CommandRunner() *command.Runner {
	return command.NewRunner()
}

func Rotator(logger logrus.FieldLogger, out ProgressWriter, runner *command.Runner) *rotation.Rotator {
	return rotation.NewRotator(logger, out, runner, transfer.NewMover())
}

func Walker(logger logrus.FieldLogger, rotator *rotation.Rotator) *rotation.Walker {
	return rotation.NewWalker(logger, rotator)
}

func CompressorRunner(logger logrus.FieldLogger, out ProgressWriter, runner *command.Runner) *rotation.CompressorRunner {
	return rotation.NewCompressorRunner(logger, out, runner)
}

func SweepService(
	logger logrus.FieldLogger,
	config *SweepConfig,
	repository domain.SweepRepository,
	walker *rotation.Walker,
	compressors *rotation.CompressorRunner,
	resolver *rotation.Resolver,
) *domain.SweepService {
	return domain.NewSweepService(logger, repository, walker, compressors, resolver, config.Paths)
}

func SweepManager(
	logger logrus.FieldLogger,
	config *SweepConfig,
	service *domain.SweepService,
	cron *cron.Cron,
) *domain.SweepManager {
	return domain.NewSweepManager(logger, config.Schedule, service, cron)
}

// RunSweeps either starts the scheduler or performs a single sweep and
// shuts the application down afterwards.
func RunSweeps(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger logrus.FieldLogger,
	config *SweepConfig,
	service *domain.SweepService,
	manager *domain.SweepManager,
) {
	if config.Daemon {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return manager.Run()
			},
			OnStop: func(ctx context.Context) error {
				manager.Stop()
				return nil
			},
		})
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				_, err := service.Sweep(context.Background(), config.Interval, time.Now())
				if err != nil {
					logger.WithError(err).Error("Sweep finished with error")
				}

				err = shutdowner.Shutdown()
				if err != nil {
					logger.WithError(err).Error("Unable to shut down")
				}
			}()
			return nil
		},
	})
}
