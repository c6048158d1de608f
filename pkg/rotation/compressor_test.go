package rotation

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// region commandRunnerMock
type commandRunnerMock struct {
	mock.Mock
}

func (m *commandRunnerMock) Run(dir string, argv []string) (int, error) {
	args := m.Called(dir, argv)
	return args.Int(0), args.Error(1)
}

// endregion

func newTestCompressorRunner(runner CommandRunner) (*CompressorRunner, *bytes.Buffer, *test.Hook, *int) {
	logger, hook := test.NewNullLogger()
	out := &bytes.Buffer{}
	lowered := 0

	c := NewCompressorRunner(logger, out, runner)
	c.lowerPriority = func(increment int) (int, error) {
		lowered += increment
		return lowered, nil
	}
	c.holdPriority = func(int) error { return nil }

	return c, out, hook, &lowered
}

func TestCompressorRunner_Run(t *testing.T) {
	runner := &commandRunnerMock{}

	runner.On("Run", "/a", []string{"false"}).Return(1, nil).Once()
	runner.On("Run", "/a", []string{"gzip", "-9", "/a/missing"}).Return(-1, errors.New("executable file not found")).Once()
	runner.On("Run", "/b", []string{"gzip", "-9", "/b/second.log"}).Return(0, nil).Once()

	c, out, hook, lowered := newTestCompressorRunner(runner)

	c.Run(context.Background(), []CompressorJob{
		{Dir: "/a", Args: []string{"false"}},
		{Dir: "/a", Args: []string{"gzip", "-9", "/a/missing"}},
		{Dir: "/b", Args: []string{"gzip", "-9", "/b/second.log"}},
	})

	runner.AssertExpectations(t)
	assert.Equal(t, "Executing compressors... done.\n", out.String())
	assert.Equal(t, compressorNiceness, *lowered)

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, logrus.ErrorLevel, hook.Entries[0].Level)
	assert.Equal(t, 1, hook.Entries[0].Data["exit_code"])
	assert.Contains(t, hook.Entries[1].Message, "executable file not found")
	assert.Equal(t, "gzip -9 /a/missing", hook.Entries[1].Data["command"])
}

func TestCompressorRunner_Run_LowersPriorityOnce(t *testing.T) {
	runner := &commandRunnerMock{}

	c, out, _, lowered := newTestCompressorRunner(runner)

	c.Run(context.Background(), nil)
	c.Run(context.Background(), nil)

	assert.Equal(t, compressorNiceness, *lowered)
	assert.Equal(t, "Executing compressors... done.\nExecuting compressors... done.\n", out.String())
}

func TestCompressorRunner_Run_PriorityFailureIsNotFatal(t *testing.T) {
	runner := &commandRunnerMock{}
	runner.On("Run", "/a", []string{"true"}).Return(0, nil)

	c, out, hook, _ := newTestCompressorRunner(runner)
	c.lowerPriority = func(int) (int, error) { return 0, errors.New("operation not permitted") }
	c.holdPriority = func(int) error {
		t.Fatal("priority must not be held after lowering failed")
		return nil
	}

	c.Run(context.Background(), []CompressorJob{{Dir: "/a", Args: []string{"true"}}})

	runner.AssertExpectations(t)
	assert.Equal(t, "Executing compressors... done.\n", out.String())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCompressorRunner_Run_Gzip(t *testing.T) {
	if _, err := exec.LookPath("gzip"); err != nil {
		t.Skip("gzip is not available")
	}

	sandbox := t.TempDir()
	first := filepath.Join(sandbox, "first.log")
	second := filepath.Join(sandbox, "second.log")
	badGzip := filepath.Join(sandbox, "gzip")

	require.NoError(t, ioutil.WriteFile(first, nil, 0644))
	require.NoError(t, ioutil.WriteFile(second, nil, 0644))

	c, out, hook, _ := newTestCompressorRunner(discardRunner())

	c.Run(context.Background(), []CompressorJob{
		{Dir: sandbox, Args: []string{"false"}},
		{Dir: sandbox, Args: []string{badGzip, "-9", first}},
		{Dir: sandbox, Args: []string{"gzip", "-9", "second.log"}},
	})

	assert.Equal(t, "Executing compressors... done.\n", out.String())
	assert.FileExists(t, first)
	assert.NoFileExists(t, first+".gz")
	assert.NoFileExists(t, second)
	assert.FileExists(t, second+".gz")

	require.Len(t, hook.Entries, 2)
	assert.Contains(t, hook.Entries[1].Message, badGzip)
}

func TestCompressorRunner_Run_HoldsPriorityEveryRun(t *testing.T) {
	runner := &commandRunnerMock{}

	c, _, _, _ := newTestCompressorRunner(runner)

	var held []int
	c.holdPriority = func(nice int) error {
		held = append(held, nice)
		return nil
	}

	c.Run(context.Background(), nil)
	c.Run(context.Background(), nil)

	assert.Equal(t, []int{compressorNiceness, compressorNiceness}, held)
}
