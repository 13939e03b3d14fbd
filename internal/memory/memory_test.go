package memory

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubReader(t *testing.T, fn func() (uint64, uint64, error)) {
	t.Helper()
	orig := readResident
	readResident = fn
	t.Cleanup(func() { readResident = orig })
}

func TestSampleConvertsToMB(t *testing.T) {
	stubReader(t, func() (uint64, uint64, error) {
		return 64 * bytesPerMB, 96 * bytesPerMB, nil
	})

	got := Sample()
	require.Equal(t, 64.0, got.ResidentMB)
	require.Equal(t, 96.0, got.PeakMB)
}

func TestSampleFailureReturnsZero(t *testing.T) {
	stubReader(t, func() (uint64, uint64, error) {
		return 0, 0, errors.New("procfs unavailable")
	})

	require.Equal(t, Reading{}, Sample())
}

func TestSampleLiveProcess(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("resident memory is read from procfs")
	}
	got := Sample()
	require.Greater(t, got.ResidentMB, 0.0)
	require.GreaterOrEqual(t, got.PeakMB, got.ResidentMB)
}
