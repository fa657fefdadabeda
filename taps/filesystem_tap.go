package taps

import (
	"fmt"
	"sync"

	"github.com/radovskyb/watcher"
)

// FilesystemTap is a tap with the functionality of polling the local filesystem and encoding
// the new files of the source directory into the target directory.
type FilesystemTap struct {
	*fileTap
	watcher  *watcher.Watcher
	stop     chan struct{}
	watchers sync.WaitGroup
}

// NewFilesystemTap creates a new instance of the polling filesystem tap.
// You can feed this tap to an Engine object to automate your encoding tasks.
//
// The source directory is scanned every opts.PollingInterval. Every file, including the ones
// which already exist when the tap opens, gets encoded once it has not changed for opts.QuietPeriod.
func NewFilesystemTap(opts Options) (*FilesystemTap, error) {
	base, err := newFileTap(opts)
	if err != nil {
		return nil, err
	}

	w := watcher.New()
	// a remove and a create which share an inode within one poll arrive as Rename or Move
	w.FilterOps(watcher.Create, watcher.Write, watcher.Rename, watcher.Move)
	w.IgnoreHiddenFiles(true)

	if err := w.AddRecursive(base.source); err != nil {
		return nil, err
	}

	return &FilesystemTap{
		fileTap: base,
		watcher: w,
		stop:    make(chan struct{}),
	}, nil
}

// Open starts the filesystem watcher on the source directory.
// You SHOULD NOT call this method explicitly when you use the tap with an Engine object.
// Starting the engine will take care of opening the tap.
func (f *FilesystemTap) Open() {
	f.open(func() error {
		f.watchers.Add(2)
		go f.monitorSourceDirectory()
		go f.startWatcher()
		f.watcher.Wait()
		return nil
	})
}

// Close stops the filesystem watcher and releases the resources.
// NOTE: You don't need to explicitly call this function when you are using the tap
// with an Engine
func (f *FilesystemTap) Close() {
	f.close(func() {
		f.watcher.Close()
		close(f.stop)
		f.watchers.Wait()
	})
}

func (f *FilesystemTap) startWatcher() {
	defer f.watchers.Done()
	if err := f.watcher.Start(f.opts.PollingInterval); err != nil {
		f.reportError(fmt.Errorf("filesystem watcher: %w", err))
	}
}

// monitorSourceDirectory drains the watcher until it gets closed. The watcher blocks on
// sending events, so this routine must not return before watcher.Close does.
func (f *FilesystemTap) monitorSourceDirectory() {
	defer f.watchers.Done()
	for {
		select {
		case event := <-f.watcher.Event:
			if event.IsDir() {
				continue
			}
			if event.Op == watcher.Rename || event.Op == watcher.Move {
				f.queue.Remove(event.OldPath)
			}
			f.queueFile(event.Path)
		case err := <-f.watcher.Error:
			f.reportError(err)
		case <-f.watcher.Closed:
			return
		case <-f.stop:
			return
		}
	}
}
