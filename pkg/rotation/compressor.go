package rotation

import (
	"context"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrot/pkg/appcontext"
)

const compressorNiceness = 10

// CompressorRunner executes deferred compression jobs once a sweep has
// moved every file.
type CompressorRunner struct {
	logger logrus.FieldLogger
	out    io.Writer
	runner CommandRunner

	lowerPriority func(increment int) (int, error)
	holdPriority  func(nice int) error
	lowered       sync.Once
	nice          int
	holding       bool
}

func NewCompressorRunner(logger logrus.FieldLogger, out io.Writer, runner CommandRunner) *CompressorRunner {
	return &CompressorRunner{
		logger:        logger,
		out:           out,
		runner:        runner,
		lowerPriority: lowerPriority,
		holdPriority:  holdPriority,
	}
}

// Run executes jobs one after another. A failing job is logged and does
// not prevent the following ones from running. Process priority is lowered
// on the first call and stays lowered for the life of the process.
func (c *CompressorRunner) Run(ctx context.Context, jobs []CompressorJob) {
	logger := appcontext.LoggerFromContext(c.logger, ctx)

	// Children inherit the nice value of the thread that forks them, so
	// every job is started from this one thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c.lowered.Do(func() {
		nice, err := c.lowerPriority(compressorNiceness)
		if err != nil {
			logger.WithError(err).Warn("Unable to lower process priority")
			return
		}

		c.nice, c.holding = nice, true
	})

	if c.holding {
		if err := c.holdPriority(c.nice); err != nil {
			logger.WithError(err).Warn("Unable to lower thread priority")
		}
	}

	_, _ = io.WriteString(c.out, "Executing compressors... ")

	for _, job := range jobs {
		jobLogger := logger.WithFields(logrus.Fields{
			"dir":     job.Dir,
			"command": strings.Join(job.Args, " "),
		})

		code, err := c.runner.Run(job.Dir, job.Args)
		if err != nil {
			jobLogger.WithError(err).Errorf("Unable to run compressor: %+v", err)
			continue
		}

		if code != 0 {
			jobLogger.WithField("exit_code", code).Errorf("Compressor failed with code %d", code)
		}
	}

	_, _ = io.WriteString(c.out, "done.\n")
}
