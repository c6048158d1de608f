package transfer

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMover_Move(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	dst := filepath.Join(dir, "app.log.1")

	require.NoError(t, os.WriteFile(src, []byte("line\n"), 0640))

	err := NewMover().Move(src, dst)

	require.NoError(t, err)
	assert.NoFileExists(t, src)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}

func TestMover_Move_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := NewMover().Move(filepath.Join(dir, "missing.log"), filepath.Join(dir, "dst.log"))

	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "dst.log"))
}

func TestMoveAcrossDevices(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	dst := filepath.Join(dir, "backup", "app.log")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backup"), 0755))

	err := moveAcrossDevices(src, dst)

	require.NoError(t, err)
	assert.NoFileExists(t, src)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(dir, "backup"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMoveAcrossDevices_MissingTargetDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0600))

	err := moveAcrossDevices(src, filepath.Join(dir, "missing", "app.log"))

	assert.Error(t, err)
	assert.FileExists(t, src)
}

func TestMoveAcrossDevices_Symlink(t *testing.T) {
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin.log")
	link := filepath.Join(dir, "link.log")
	dst := filepath.Join(dir, "moved.log")

	require.NoError(t, os.WriteFile(origin, nil, 0600))
	require.NoError(t, os.Symlink(origin, link))

	err := moveAcrossDevices(link, dst)

	require.NoError(t, err)
	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, origin, target)
	assert.FileExists(t, origin)
}

func TestIsCrossDevice(t *testing.T) {
	assert.True(t, isCrossDevice(&os.LinkError{Op: "rename", Err: syscall.EXDEV}))
	assert.False(t, isCrossDevice(&os.LinkError{Op: "rename", Err: syscall.ENOENT}))
	assert.False(t, isCrossDevice(os.ErrNotExist))
}

func TestMoveAcrossDevices_SourceRemovalFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	dst := filepath.Join(dir, "backup", "app.log")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backup"), 0755))

	removeSource = func(string) error { return os.ErrPermission }
	defer func() { removeSource = os.Remove }()

	err := moveAcrossDevices(src, dst)

	require.Error(t, err)
	assert.Contains(t, err.Error(), src)
	assert.FileExists(t, src)
	assert.NoFileExists(t, dst)

	entries, err := os.ReadDir(filepath.Join(dir, "backup"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
