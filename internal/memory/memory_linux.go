//go:build linux

package memory

import "github.com/prometheus/procfs"

func residentBytes() (uint64, uint64, error) {
	proc, err := procfs.Self()
	if err != nil {
		return 0, 0, err
	}
	status, err := proc.NewStatus()
	if err != nil {
		return 0, 0, err
	}
	return status.VmRSS, status.VmHWM, nil
}
