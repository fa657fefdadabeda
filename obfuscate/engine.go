package obfuscate

import (
	"context"
	"sync"
)

// Engine is the type that processes the encoding and decoding tasks it receives from a Tap.
type Engine struct {
	stream   *stream
	notify   bool
	progress chan *Result
	wg       *sync.WaitGroup
	cancel   context.CancelFunc
	workers  uint16
	opts     Options
	factory  ChunkEncoderFactory

	startOnce sync.Once
	stopOnce  sync.Once

	//to prevent multiple go routines to run Start and Stop at the same time
	mux       sync.Mutex
	isRunning bool
}

// NewEngine creates a new engine which processes up to "workers" tasks at the same time.
//
// Every encoding task runs its own Encoder configured with opts and factory, so the total number
// of encoding goroutines is workers*opts.Workers.
// If enableProgress is true, you need to read off the Progress channel, otherwise the workers
// will get blocked.
func NewEngine(workers uint16, enableProgress bool, opts Options, factory ChunkEncoderFactory, tap Tap) *Engine {
	if workers == 0 {
		workers = 1
	}
	opts = opts.normalise()
	return &Engine{
		stream:   newStream(workers, tap, opts.Logger),
		progress: make(chan *Result),
		wg:       &sync.WaitGroup{},
		notify:   enableProgress,
		workers:  workers,
		opts:     opts,
		factory:  factory,
	}
}

// Progress returns the channel on which the engine reports the progress of the tasks.
// The channel will be closed once the engine stops.
func (e *Engine) Progress() <-chan *Result {
	return e.progress
}

func (e *Engine) reportProgress(ctx context.Context, r *Result) {
	if !e.notify {
		return
	}
	select {
	case e.progress <- r:
	case <-ctx.Done():
	}
}

// Start starts the engine to serve the requests coming through the tap.
// Once you are finished with the engine, you need to call the Stop function.
// It's safe to call this method on a running engine
func (e *Engine) Start() {
	e.mux.Lock()
	defer e.mux.Unlock()

	if e.isRunning {
		return
	}

	e.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		e.cancel = cancel

		for i := 0; uint16(i) < e.workers; i++ {
			e.wg.Add(1)
			go e.monitorStream(ctx)
		}
		e.stream.open()
		e.isRunning = true
	})
}

// Stop stops the engine and releases the resources. In-flight tasks get cancelled.
// It's safe to call this function on a stopped engine
func (e *Engine) Stop() {
	e.mux.Lock()
	defer e.mux.Unlock()

	if !e.isRunning {
		return
	}
	e.stopOnce.Do(func() {
		e.isRunning = false
		e.stream.shutdown()
		e.cancel()
		e.wg.Wait()
		close(e.progress)
	})
}

// IsON returns true if the engine is running
func (e *Engine) IsON() bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.isRunning
}

func (e *Engine) monitorStream(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case task, more := <-e.stream.tube:
			if !more {
				return
			}
			e.reportProgress(ctx, &Result{
				Status:   InProgress,
				Metadata: task.Metadata,
			})
			err := e.processTask(ctx, task)
			task.callBack()
			e.reportProgress(ctx, &Result{
				Error:    err,
				Status:   task.Status(),
				Metadata: task.Metadata,
			})
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine) processTask(ctx context.Context, task *Task) error {
	outputs := task.markAsInProgress()
	var status Status
	var err error
	if task.mode == Encode {
		encoder := NewEncoder(e.opts, e.factory, task.input, outputs...)
		status, err = encoder.EncodeContext(ctx)
	} else {
		decoder := NewDecoder(defaultBufferSize, task.input, outputs...)
		status, err = decoder.DecodeContext(ctx)
	}
	task.markAsComplete(status, err)
	return err
}
