package transfer

import (
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
)

var removeSource = os.Remove

type Mover struct {
}

func NewMover() *Mover {
	return &Mover{}
}

// Move relocates src to dst. Within one filesystem this is a single
// rename. Rename doesn't work across different mount points, so in that
// case the file is copied next to dst under a temporary name, renamed into
// place and only then removed from src.
func (m *Mover) Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !isCrossDevice(err) {
		return err
	}

	return moveAcrossDevices(src, dst)
}

func isCrossDevice(err error) bool {
	linkErr, ok := err.(*os.LinkError)
	if !ok {
		return false
	}

	return linkErr.Err == syscall.EXDEV
}

func moveAcrossDevices(src, dst string) error {
	si, err := os.Lstat(src)
	if err != nil {
		return err
	}

	if si.Mode()&os.ModeSymlink != 0 {
		return moveSymlink(src, dst)
	}

	if !si.Mode().IsRegular() {
		return errors.Errorf("unable to move \"%s\": not a regular file", src)
	}

	tmp, err := copyToTemp(src, filepath.Dir(dst), si.Mode())
	if err != nil {
		return errors.Wrapf(err, "failed to copy %s to %s", src, dst)
	}

	err = os.Rename(tmp, dst)
	if err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "failed to place copy of %s at %s", src, dst)
	}

	err = removeSource(src)
	if err != nil {
		// undo the copy so src remains the only instance
		if rmErr := os.Remove(dst); rmErr != nil {
			return errors.Wrapf(err, "failed to cleanup source file %s, copy left at %s", src, dst)
		}
		return errors.Wrapf(err, "failed to cleanup source file %s", src)
	}

	return nil
}

func moveSymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}

	err = os.Symlink(target, dst)
	if err != nil {
		return err
	}

	return os.Remove(src)
}

func copyToTemp(src, dir string, mode os.FileMode) (tmpName string, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.CreateTemp(dir, "."+filepath.Base(src)+".*")
	if err != nil {
		return "", err
	}
	tmpName = out.Name()

	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = e
		}
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	_, err = io.Copy(out, in)
	if err != nil {
		return
	}

	err = out.Sync()
	if err != nil {
		return
	}

	err = out.Chmod(mode.Perm())

	return
}
