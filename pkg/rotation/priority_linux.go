package rotation

import (
	"io/ioutil"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const maxNice = 19

// lowerPriority raises the nice value of every thread of the process by
// increment and returns the resulting nice value. Linux keeps nice per
// thread and a new thread inherits it from the thread that creates it.
func lowerPriority(increment int) (int, error) {
	nice, err := threadNice(0)
	if err != nil {
		return 0, err
	}

	target := nice + increment
	if target > maxNice {
		target = maxNice
	}

	tasks, err := ioutil.ReadDir("/proc/self/task")
	if err != nil {
		return target, raiseNice(0, target)
	}

	for _, task := range tasks {
		tid, err := strconv.Atoi(task.Name())
		if err != nil {
			continue
		}

		err = raiseNice(tid, target)
		if err != nil && err != unix.ESRCH {
			return target, errors.Wrapf(err, "unable to renice thread %d", tid)
		}
	}

	return target, raiseNice(0, target)
}

// holdPriority makes sure the calling thread runs at nice or lower.
func holdPriority(nice int) error {
	return raiseNice(0, nice)
}

// threadNice reads the nice value of a thread, 0 meaning the calling one.
// The raw getpriority syscall returns 20 - nice.
func threadNice(tid int) (int, error) {
	raw, err := unix.Getpriority(unix.PRIO_PROCESS, tid)
	if err != nil {
		return 0, err
	}

	return 20 - raw, nil
}

func raiseNice(tid, nice int) error {
	current, err := threadNice(tid)
	if err != nil {
		return err
	}

	if current >= nice {
		return nil
	}

	return unix.Setpriority(unix.PRIO_PROCESS, tid, nice)
}
