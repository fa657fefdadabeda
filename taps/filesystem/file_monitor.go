package filesystem

import (
	"os"
	"time"
)

type fileMonitor struct {
	path       string
	fi         os.FileInfo
	lastUpdate time.Time
}

func newFileMonitor(fi os.FileInfo, path string, now time.Time) *fileMonitor {
	return &fileMonitor{
		path:       path,
		fi:         fi,
		lastUpdate: now,
	}
}

func (m *fileMonitor) update(fi os.FileInfo, now time.Time) {
	m.fi = fi
	m.lastUpdate = now
}

func (m *fileMonitor) isReady(now time.Time, quiet time.Duration) bool {
	return !m.lastUpdate.IsZero() && now.Sub(m.lastUpdate) >= quiet
}
