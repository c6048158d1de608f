//go:build !linux

package rotation

func lowerPriority(increment int) (int, error) {
	return 0, nil
}

func holdPriority(nice int) error {
	return nil
}
