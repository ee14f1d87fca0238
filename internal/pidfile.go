package internal

import (
	"os"
	"strconv"
	"strings"
)

// WritePidFile persists pids as a newline-separated plain-text file at
// path, overwriting any existing content.
func WritePidFile(path string, pids []int) error {
	var b strings.Builder
	for _, pid := range pids {
		b.WriteString(strconv.Itoa(pid))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ReadPidFile parses a newline-separated plain-text pid file. A missing
// file is treated as an empty list, not an error.
func ReadPidFile(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// ClearPidFile removes the pid file. A missing file is not an error.
func ClearPidFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
