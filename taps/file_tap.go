package taps

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xitonix/mornary/logging"
	"github.com/xitonix/mornary/obfuscate"
	"github.com/xitonix/mornary/taps/filesystem"
)

const (
	// EncodedFileExtension the extension of the files created by the taps
	EncodedFileExtension = ".morse"

	defaultPollingInterval = 100 * time.Millisecond
	defaultQuietPeriod     = 2 * time.Second

	outputMetadataKey     = "output"
	inputMetadataKey      = "input"
	outputFullMetadataKey = "output_full_path"
	inputFullMetadataKey  = "input_full_path"
)

// Options configures a file tap
type Options struct {
	// Source the directory to watch. It will be created if it does not exist.
	Source string
	// Target the directory the encoded files are written to. It will be created if it does not exist
	// and must not be inside Source.
	Target string
	// PollingInterval how often the tap looks for files which are ready to be encoded
	PollingInterval time.Duration
	// QuietPeriod how long a file must stay unchanged before it gets encoded
	QuietPeriod time.Duration
	// NotifyErrors enables the Errors channel. You MUST read off the channel if it's enabled.
	NotifyErrors bool
	// ReportProgress enables the Progress channel. You MUST read off the channel if it's enabled.
	ReportProgress bool
	// DeleteCompleted removes the source files (and their empty parent directories) once they have been encoded successfully
	DeleteCompleted bool
	Logger          logging.Logger
}

// File file
type File struct {
	// Name file name
	Name string
	// Path file full path
	Path string
}

// Result represents the progress details of a task
type Result struct {
	// Status the status of the operation
	Status obfuscate.Status
	// Error the error details of a failed task
	Error error
	// Input input file
	Input File
	// Output output file
	Output File
}

// fileTap is the common part of the taps which encode the files of a source directory
// into <target>/<relative directory>/<name>.morse
type fileTap struct {
	requests       obfuscate.RequestChannel
	progress       chan *Result
	errors         chan error
	opts           Options
	source, target string
	queue          *filesystem.Queue
	wg             sync.WaitGroup
	done           chan obfuscate.None
	inFlight       int32

	// guards the progress and errors channels against being closed while a callback reports
	chMux  sync.RWMutex
	closed bool

	openOnce  sync.Once
	closeOnce sync.Once

	// to prevent multiple go routines to run
	// Open and Close at the same time
	mux    sync.Mutex
	isOpen bool
}

func newFileTap(opts Options) (*fileTap, error) {
	src, err := createDirIfNotExist(opts.Source)
	if err != nil {
		return nil, err
	}

	tg, err := createDirIfNotExist(opts.Target)
	if err != nil {
		return nil, err
	}

	if isNested(src, tg) {
		return nil, ErrNestedTarget
	}

	if opts.PollingInterval <= 0 {
		opts.PollingInterval = defaultPollingInterval
	}
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = defaultQuietPeriod
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return &fileTap{
		requests: make(obfuscate.RequestChannel),
		progress: make(chan *Result),
		errors:   make(chan error),
		opts:     opts,
		source:   src,
		target:   tg,
		queue:    filesystem.NewQueue(opts.QuietPeriod),
		done:     make(chan obfuscate.None),
	}, nil
}

// Errors returns a read-only channel on which you will receive the failure notifications.
// The channel gets closed once the tap is closed.
func (f *fileTap) Errors() <-chan error {
	return f.errors
}

// Progress returns a read-only channel on which you will receive the progress report.
// The channel gets closed once the tap is closed.
func (f *fileTap) Progress() <-chan *Result {
	return f.progress
}

// Requests returns the channel from which the engine receives the encoding tasks
func (f *fileTap) Requests() obfuscate.RequestChannel {
	return f.requests
}

// IsOpen returns true if the tap is open
func (f *fileTap) IsOpen() bool {
	f.mux.Lock()
	defer f.mux.Unlock()
	return f.isOpen
}

// Source returns the absolute path to the source directory
func (f *fileTap) Source() string {
	return f.source
}

// Target returns the absolute path to the target directory
func (f *fileTap) Target() string {
	return f.target
}

// open starts the background routines. watch is called while holding the lock and must not block.
func (f *fileTap) open(watch func() error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	f.openOnce.Do(func() {
		if err := watch(); err != nil {
			f.opts.Logger.Errorf("failed to watch '%s': %s", f.source, err)
			f.reportError(fmt.Errorf("failed to watch '%s': %w", f.source, err))
		}

		f.wg.Add(2)
		go f.queueExistingFiles()
		go f.dispatchReadyFiles()
		f.isOpen = true
	})
}

// close stops the background routines, then closes the channels. unwatch must stop all the
// routines which feed the queue.
func (f *fileTap) close(unwatch func()) {
	f.mux.Lock()
	defer f.mux.Unlock()

	if !f.isOpen {
		return
	}

	f.closeOnce.Do(func() {
		unwatch()
		close(f.done)
		f.wg.Wait()
		close(f.requests)

		f.chMux.Lock()
		f.closed = true
		close(f.errors)
		close(f.progress)
		f.chMux.Unlock()

		f.isOpen = false
	})
}

func (f *fileTap) isClosing() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *fileTap) queueFile(path string) {
	if isHidden(path) {
		return
	}
	if _, err := f.queue.AddOrUpdate(path, time.Now()); err != nil {
		f.reportError(fmt.Errorf("failed to stat '%s': %w", path, err))
	}
}

func (f *fileTap) queueExistingFiles() {
	defer f.wg.Done()
	err := filepath.WalkDir(f.source, func(path string, d fs.DirEntry, err error) error {
		if f.isClosing() {
			return filepath.SkipAll
		}
		if err != nil {
			f.reportError(err)
			return nil
		}
		if d.IsDir() {
			if path != f.source && isHidden(path) {
				return filepath.SkipDir
			}
			return nil
		}
		f.queueFile(path)
		return nil
	})

	if err != nil {
		f.reportError(err)
	}
}

func (f *fileTap) dispatchReadyFiles() {
	defer f.wg.Done()
	ticker := time.NewTicker(f.opts.PollingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-f.done:
			return
		case now := <-ticker.C:
			for _, entry := range f.queue.Ready(now) {
				if !f.dispatch(entry.Path, entry.Info) {
					return
				}
			}
		}
	}
}

// dispatch sends an encoding task to the engine. It returns false if the tap has been closed.
func (f *fileTap) dispatch(path string, file os.FileInfo) bool {
	input, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.reportError(fmt.Errorf("failed to open '%s': %w", path, err))
		}
		return true
	}

	name := file.Name()
	output, outputFullPath, err := f.createOutputFile(name, path)
	if err != nil {
		input.Close()
		f.reportError(fmt.Errorf("failed to create '%s': %w", outputFullPath, err))
		return true
	}

	t := obfuscate.NewTask(obfuscate.Encode, input, output, f.whenDone)
	outName := name + EncodedFileExtension
	t.Metadata[inputMetadataKey] = name
	t.Metadata[outputMetadataKey] = outName
	t.Metadata[inputFullMetadataKey] = path
	t.Metadata[outputFullMetadataKey] = outputFullPath

	f.reportProgress(&Result{
		Status: obfuscate.Queued,
		Input:  File{Name: name, Path: path},
		Output: File{Name: outName, Path: outputFullPath},
	})

	atomic.AddInt32(&f.inFlight, 1)
	select {
	case f.requests <- t:
		f.opts.Logger.Debugf("queued '%s' for encoding", path)
		return true
	case <-f.done:
		atomic.AddInt32(&f.inFlight, -1)
		t.CloseInput()
		t.CloseOutputs()
		os.Remove(outputFullPath)
		return false
	}
}

// whenDone is a callback method which will get called by the engine once the
// processing of a task has been finished
func (f *fileTap) whenDone(t *obfuscate.Task) {
	defer atomic.AddInt32(&f.inFlight, -1)
	input, output := parseMetadata(t.Metadata)

	if err := t.CloseInput(); err != nil {
		f.reportError(fmt.Errorf("failed to close '%s': %w", input.Name, err))
	}
	if err := t.CloseOutputs(); err != nil {
		f.reportError(fmt.Errorf("failed to close '%s': %w", output.Name, err))
	}

	status := t.Status()
	if status == obfuscate.Completed {
		f.opts.Logger.Infof("%s > %s", input.Path, output.Path)
	} else {
		f.opts.Logger.Warningf("failed to encode '%s': %s (%v)", input.Path, status, t.Err())
		if err := os.Remove(output.Path); err != nil && !os.IsNotExist(err) {
			f.reportError(fmt.Errorf("failed to remove '%s': %w", output.Name, err))
		}
	}

	if f.opts.DeleteCompleted && status == obfuscate.Completed {
		if err := os.Remove(input.Path); err != nil {
			f.reportError(fmt.Errorf("failed to remove '%s': %w", input.Name, err))
		} else {
			f.removeEmptyParents(filepath.Dir(input.Path))
		}
	}

	f.reportProgress(&Result{
		Input:  input,
		Output: output,
		Status: status,
		Error:  t.Err(),
	})
}

// InFlight returns the number of files which have been sent to the engine but not processed yet
func (f *fileTap) InFlight() int {
	return int(atomic.LoadInt32(&f.inFlight))
}

func (f *fileTap) reportProgress(r *Result) {
	if !f.opts.ReportProgress {
		return
	}
	f.chMux.RLock()
	defer f.chMux.RUnlock()
	if f.closed {
		return
	}
	select {
	case f.progress <- r:
	case <-f.done:
	}
}

func (f *fileTap) reportError(err error) {
	if !f.opts.NotifyErrors {
		return
	}
	f.chMux.RLock()
	defer f.chMux.RUnlock()
	if f.closed {
		return
	}
	select {
	case f.errors <- err:
	case <-f.done:
	}
}

func (f *fileTap) createOutputFile(name, inputFullPath string) (*os.File, string, error) {
	subDir, err := filepath.Rel(f.source, filepath.Dir(inputFullPath))
	if err != nil {
		return nil, name, err
	}
	abs, err := createDirIfNotExist(filepath.Join(f.target, subDir))
	if err != nil {
		return nil, name, err
	}
	abs = filepath.Join(abs, name+EncodedFileExtension)
	output, err := os.Create(abs)
	return output, abs, err
}

// removeEmptyParents walks up from dir and removes the empty directories below the source
func (f *fileTap) removeEmptyParents(dir string) {
	for isNested(f.source, dir) && dir != f.source {
		if !isDirEmpty(dir) {
			return
		}
		if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
			f.reportError(fmt.Errorf("failed to remove '%s' directory: %w", dir, err))
			return
		}
		dir = filepath.Dir(dir)
	}
}

func parseMetadata(metadata obfuscate.MetadataMap) (File, File) {
	return File{
			Name: metadata[inputMetadataKey].(string),
			Path: metadata[inputFullMetadataKey].(string),
		},
		File{
			Name: metadata[outputMetadataKey].(string),
			Path: metadata[outputFullMetadataKey].(string),
		}
}

func createDirIfNotExist(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir, err
	}
	f, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return abs, os.MkdirAll(abs, os.ModePerm)
	}
	if err != nil {
		return abs, err
	}
	if !f.IsDir() {
		return abs, ErrInvalidDirectory
	}
	return abs, nil
}

// isNested returns true if path is parent or one of its sub-directories
func isNested(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isDirEmpty(name string) bool {
	entries, err := os.ReadDir(name)
	if err != nil {
		return false
	}
	return len(entries) == 0
}
