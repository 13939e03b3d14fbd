//go:build !linux

package memory

func residentBytes() (uint64, uint64, error) {
	return 0, 0, ErrUnavailable
}
