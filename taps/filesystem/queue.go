// Package filesystem holds the files reported by a directory watcher until they stop changing.
package filesystem

import (
	"os"
	"sort"
	"sync"
	"time"
)

// Entry is a file which has not been modified for at least the quiet period of the queue
type Entry struct {
	Path string
	Info os.FileInfo
}

// Queue debounces file events. A file becomes ready once it has not been
// reported for the quiet period, so half written files are not picked up.
type Queue struct {
	quiet    time.Duration
	mux      sync.Mutex
	monitors map[string]*fileMonitor
}

// NewQueue creates a new queue with the specified quiet period
func NewQueue(quiet time.Duration) *Queue {
	return &Queue{
		quiet:    quiet,
		monitors: make(map[string]*fileMonitor),
	}
}

// AddOrUpdate starts monitoring the file or resets its quiet period if it is already queued.
// Directories are never queued and missing files are ignored.
func (q *Queue) AddOrUpdate(path string, now time.Time) (isDir bool, err error) {
	f, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if f.IsDir() {
		return true, nil
	}

	q.mux.Lock()
	defer q.mux.Unlock()
	if m, ok := q.monitors[path]; ok {
		m.update(f, now)
		return false, nil
	}
	q.monitors[path] = newFileMonitor(f, path, now)
	return false, nil
}

// Ready removes and returns the files which have been quiet long enough, sorted by path
func (q *Queue) Ready(now time.Time) []Entry {
	q.mux.Lock()
	defer q.mux.Unlock()
	var ready []Entry
	for path, m := range q.monitors {
		if m.isReady(now, q.quiet) {
			ready = append(ready, Entry{Path: m.path, Info: m.fi})
			delete(q.monitors, path)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		return ready[i].Path < ready[j].Path
	})
	return ready
}

// Remove stops monitoring the file
func (q *Queue) Remove(path string) {
	q.mux.Lock()
	defer q.mux.Unlock()
	delete(q.monitors, path)
}

// Len returns the number of files in the queue
func (q *Queue) Len() int {
	q.mux.Lock()
	defer q.mux.Unlock()
	return len(q.monitors)
}
