package rotation

// NeedToRotate reports whether a file of currentSize bytes should be rotated
// by a sweep running at currentInterval. Reaching maxSize always rotates;
// otherwise the sweep interval must match the configured one and the file
// must be at least minSize bytes long.
func NeedToRotate(minSize, maxSize int64, configuredInterval string, currentSize int64, currentInterval string) bool {
	return currentSize >= maxSize || (currentInterval == configuredInterval && currentSize >= minSize)
}
