package taps

import (
	"path/filepath"
	"sync"

	"github.com/rjeczalik/notify"
)

// eventBufferSize notify drops the events the receiver is not able to keep up with
const eventBufferSize = 64

// DirectoryWatcherTap is a tap which subscribes to the filesystem notifications of the operating
// system and encodes the files of the source directory into the target directory.
type DirectoryWatcherTap struct {
	*fileTap
	fsEvents chan notify.EventInfo
	stop     chan struct{}
	watchers sync.WaitGroup
}

// NewDirectoryWatcherTap creates a new instance of the directory watcher tap.
//
// Unlike FilesystemTap, the source directory is not scanned periodically. The tap is notified by the
// operating system about the created and modified files, which get encoded once they have not changed
// for opts.QuietPeriod. The files which already exist when the tap opens get encoded too.
func NewDirectoryWatcherTap(opts Options) (*DirectoryWatcherTap, error) {
	base, err := newFileTap(opts)
	if err != nil {
		return nil, err
	}

	return &DirectoryWatcherTap{
		fileTap:  base,
		fsEvents: make(chan notify.EventInfo, eventBufferSize),
		stop:     make(chan struct{}),
	}, nil
}

// Open subscribes to the notifications of the source directory and its sub-directories.
// You SHOULD NOT call this method explicitly when you use the tap with an Engine object.
// Starting the engine will take care of opening the tap.
func (d *DirectoryWatcherTap) Open() {
	d.open(func() error {
		d.watchers.Add(1)
		go d.monitorSourceDirectory()
		return notify.Watch(filepath.Join(d.source, "..."), d.fsEvents, notify.Create, notify.Write, notify.Rename)
	})
}

// Close stops the directory watcher and releases the resources.
// NOTE: You don't need to explicitly call this function when you are using the tap
// with an Engine
func (d *DirectoryWatcherTap) Close() {
	d.close(func() {
		notify.Stop(d.fsEvents)
		close(d.stop)
		d.watchers.Wait()
	})
}

func (d *DirectoryWatcherTap) monitorSourceDirectory() {
	defer d.watchers.Done()
	for {
		select {
		case <-d.stop:
			return
		case ei := <-d.fsEvents:
			d.queueFile(ei.Path())
		}
	}
}
