package rotation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrot/pkg/appcontext"
	"github.com/yurykabanov/logrot/pkg/command"
	"github.com/yurykabanov/logrot/pkg/size"
)

type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeNotNeeded
	OutcomeBadConfig
	OutcomePreHookFailed
	OutcomeMissingTarget
	OutcomeTargetExists
	OutcomeMoveFailed
	OutcomePostHookFailed
	OutcomeRotated
)

// Moved reports whether the file left its original location.
func (o Outcome) Moved() bool {
	return o == OutcomeRotated || o == OutcomePostHookFailed
}

// Failed reports whether processing stopped on an error rather than on a
// policy decision.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeBadConfig, OutcomePreHookFailed, OutcomeMoveFailed, OutcomePostHookFailed:
		return true
	}
	return false
}

// CompressorJob is a deferred compression command. Args already ends with
// the rotated file path and must be run with Dir as working directory.
type CompressorJob struct {
	Dir  string
	Args []string
}

type Result struct {
	Outcome Outcome
	Jobs    []CompressorJob
}

type CommandRunner interface {
	Run(dir string, argv []string) (int, error)
}

type FileMover interface {
	Move(src, dst string) error
}

// Rotator runs the per-file rotation pipeline. Human readable progress is
// written to out, diagnostics go to logger.
type Rotator struct {
	logger logrus.FieldLogger
	out    io.Writer
	runner CommandRunner
	mover  FileMover
}

func NewRotator(logger logrus.FieldLogger, out io.Writer, runner CommandRunner, mover FileMover) *Rotator {
	return &Rotator{
		logger: logger,
		out:    out,
		runner: runner,
		mover:  mover,
	}
}

func (r *Rotator) Process(ctx context.Context, now time.Time, config RotationConfig, interval, fullPath string, currentSize int64) Result {
	if config.Ignore {
		return Result{Outcome: OutcomeIgnored}
	}

	logger := appcontext.LoggerFromContext(r.logger, appcontext.WithFile(ctx, fullPath))

	r.printf("Checking \"%s\"... ", fullPath)

	minSize, err := size.Parse(config.MinSize)
	if err != nil {
		return r.badConfig(logger, err, "Unable to parse min_size")
	}

	maxSize, err := size.Parse(config.MaxSize)
	if err != nil {
		return r.badConfig(logger, err, "Unable to parse max_size")
	}

	due := NeedToRotate(minSize, maxSize, config.Interval, currentSize, interval)
	if interval == "" {
		// an unlabeled sweep matches no interval, not even an unset one
		due = currentSize >= maxSize
	}

	if !due {
		r.println("rotation not needed.")
		return Result{Outcome: OutcomeNotNeeded}
	}

	dir, filename := filepath.Dir(fullPath), filepath.Base(fullPath)

	target, err := ComposeTarget(now, dir, filename, config.Target)
	if err != nil {
		return r.badConfig(logger, err, "Unable to compose target")
	}

	// exec_pre deliberately runs before the target is checked.
	if config.ExecPre != "" {
		if !r.runHook(logger, "exec_pre", config.ExecPre, dir, filename) {
			return Result{Outcome: OutcomePreHookFailed}
		}
	}

	if target == "" {
		r.println("missing target in configuration.")
		return Result{Outcome: OutcomeMissingTarget}
	}

	r.print("rotating... ")

	// Relative targets are relative to the directory of the rotated file,
	// the same working directory the hooks and compressors get.
	destination := target
	if !filepath.IsAbs(destination) {
		destination = filepath.Join(dir, destination)
	}

	err = os.MkdirAll(filepath.Dir(destination), 0755)
	if err != nil {
		return r.moveFailed(logger, err, "Unable to create target directory")
	}

	r.printf("\"%s\" -> \"%s\" ", fullPath, target)

	_, err = os.Lstat(destination)
	if err == nil {
		r.println("target already exists!")
		return Result{Outcome: OutcomeTargetExists}
	}
	if !os.IsNotExist(err) {
		return r.moveFailed(logger, err, "Unable to check target")
	}

	err = r.mover.Move(fullPath, destination)
	if err != nil {
		return r.moveFailed(logger.WithField("target", destination), err, "Unable to move file")
	}

	if config.ExecPost != "" {
		if !r.runHook(logger, "exec_post", config.ExecPost, dir, target) {
			return Result{Outcome: OutcomePostHookFailed}
		}
	}

	r.println("done.")

	result := Result{Outcome: OutcomeRotated}

	if config.Compress != "" {
		args, err := command.Split(config.Compress)
		if err != nil {
			logger.WithError(err).Error("Unable to schedule compressor")
			return result
		}

		result.Jobs = append(result.Jobs, CompressorJob{
			Dir:  dir,
			Args: append(args, target),
		})
	}

	return result
}

func (r *Rotator) runHook(logger logrus.FieldLogger, name, line, dir, arg string) bool {
	argv, err := command.Split(line)
	if err != nil {
		r.println(name + " failed.")
		logger.WithError(err).Warnf("%s \"%s\" is invalid", name, line)
		return false
	}

	argv = append(argv, arg)
	cmdline := strings.Join(argv, " ")

	logger.Debugf("%s \"%s\"", name, cmdline)

	code, err := r.runner.Run(dir, argv)
	if err != nil {
		r.println(name + " failed.")
		logger.WithError(err).Warnf("%s \"%s\" failed", name, cmdline)
		return false
	}

	if code != 0 {
		r.println(name + " failed.")
		logger.WithField("exit_code", code).Warnf("%s \"%s\" failed with code %d", name, cmdline, code)
		return false
	}

	return true
}

func (r *Rotator) badConfig(logger logrus.FieldLogger, err error, msg string) Result {
	r.println("bad configuration.")
	logger.WithError(err).Error(msg)
	return Result{Outcome: OutcomeBadConfig}
}

func (r *Rotator) moveFailed(logger logrus.FieldLogger, err error, msg string) Result {
	r.println("move failed.")
	logger.WithError(err).Errorf("%s: %+v", msg, err)
	return Result{Outcome: OutcomeMoveFailed}
}

func (r *Rotator) print(s string) {
	_, _ = io.WriteString(r.out, s)
}

func (r *Rotator) println(s string) {
	_, _ = io.WriteString(r.out, s+"\n")
}

func (r *Rotator) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
