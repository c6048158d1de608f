package command

import (
	"io"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// Split tokenizes a command line with shell word rules. Quotes and
// escapes are honored, variables and globs are not expanded.
func Split(line string) ([]string, error) {
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to split command \"%s\"", line)
	}

	if len(argv) == 0 {
		return nil, errors.Errorf("empty command \"%s\"", line)
	}

	return argv, nil
}

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewRunner() *Runner {
	return &Runner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes argv in dir and waits for it to exit. The returned error is
// set only when the process could not be started or waited for; a process
// that ran and failed is reported through its exit code.
func (r *Runner) Run(dir string, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}

	return -1, errors.Wrapf(err, "unable to run \"%s\"", argv[0])
}
