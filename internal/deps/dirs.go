package deps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// CheckWritableDir reports whether dir exists and the current user may
// create files in it. A missing directory is available when its nearest
// existing parent is writable, since it is created on demand.
func CheckWritableDir(name, dir string) Status {
	status := Status{Name: name, Command: dir, Description: "Directory for persistent caches"}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		status.Detail = "directory not configured"
		return status
	}

	target := dir
	for {
		info, err := os.Stat(target)
		if err == nil {
			if !info.IsDir() {
				status.Detail = fmt.Sprintf("%s is not a directory", target)
				return status
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			status.Detail = err.Error()
			return status
		}
		parent := filepath.Dir(target)
		if parent == target {
			status.Detail = fmt.Sprintf("no existing parent for %s", dir)
			return status
		}
		target = parent
	}

	if err := unix.Access(target, unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("%s is not writable: %v", target, err)
		return status
	}
	status.Path = target
	status.Available = true
	if target != dir {
		status.Detail = fmt.Sprintf("will be created under %s", target)
	}
	return status
}
