package obfuscate

import (
	"context"
	"io"
	"sync"

	"github.com/xitonix/mornary/hash"
	"github.com/xitonix/mornary/logging"
)

// ChunkEncoder converts a chunk of raw bytes into Morse text.
// Implementations do not need to be safe for concurrent use.
type ChunkEncoder interface {
	EncodeChunk(chunk []byte) (string, error)
}

// ChunkEncoderFactory creates ChunkEncoders. An Encoder calls it once per worker and once more if
// it ever needs to encode a chunk on the reading goroutine.
type ChunkEncoderFactory func() ChunkEncoder

// Encoder is the type that encodes an io.Reader into one or more io.Writer outputs
type Encoder struct {
	input   io.Reader
	output  io.Writer
	opts    Options
	factory ChunkEncoderFactory
	summary Summary
}

// NewEncoder creates a new Encoder object
func NewEncoder(opts Options, factory ChunkEncoderFactory, input io.Reader, outputs ...io.Writer) *Encoder {
	return &Encoder{
		input:   input,
		output:  io.MultiWriter(outputs...),
		opts:    opts.normalise(),
		factory: factory,
	}
}

// Summary returns the statistics of the last Encode call
func (e *Encoder) Summary() Summary {
	return e.summary
}

// Encode encodes the io.Reader into the specified io.Writer outputs.
func (e *Encoder) Encode() (Status, error) {
	return e.EncodeContext(context.Background())
}

// EncodeContext encodes the io.Reader into the specified io.Writer outputs and receives cancellation
// signal on the context parameter.
//
// The input is read in chunks which are handed to the workers. If every worker is busy and the queue
// is full, the chunk is encoded on the calling goroutine, which throttles the reader. The first chunk
// failure aborts the whole operation. Anything already written to the outputs stays there.
func (e *Encoder) EncodeContext(ctx context.Context) (Status, error) {
	e.summary = Summary{}
	if e.factory == nil {
		return Failed, ErrNoChunkEncoder
	}

	poolCtx, cancel := context.WithCancel(ctx)
	pool := newWorkerPool(poolCtx, e.opts, e.factory)
	defer func() {
		cancel()
		pool.close()
	}()

	digest := hash.NewSHA256()
	output := &countingWriter{w: e.output}
	defer func() {
		e.summary.BytesWritten = output.n
		e.summary.Digest = digest.Sum()
	}()

	asm := newReassembler(output, e.opts.Separator)
	input := io.TeeReader(e.input, digest)
	var inline ChunkEncoder

	for {
		if err := ctx.Err(); err != nil {
			return Cancelled, err
		}

		payload := make([]byte, e.opts.ChunkSize)
		n, readErr := io.ReadFull(input, payload)
		if n > 0 {
			wu := &WorkUnit{Index: e.summary.Chunks, Payload: payload, Length: n}
			e.summary.Chunks++
			e.summary.BytesRead += int64(n)

			if !pool.trySubmit(wu) {
				if inline == nil {
					inline = e.factory()
				}
				e.summary.Inline++
				e.opts.Logger.Debugf("queue is full, encoding chunk %d inline", wu.Index)
				if err := asm.add(runChunk(inline, wu)); err != nil {
					return e.fail(ctx, asm, err)
				}
			}

			select {
			case r := <-pool.results:
				if err := asm.add(r); err != nil {
					return e.fail(ctx, asm, err)
				}
			default:
			}
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return Failed, readErr
		}
	}

	for asm.received < e.summary.Chunks {
		select {
		case r := <-pool.results:
			if err := asm.add(r); err != nil {
				return e.fail(ctx, asm, err)
			}
		case <-poolCtx.Done():
			return Cancelled, ctx.Err()
		}
	}

	e.opts.Logger.Debugf("encoded %d chunk(s), %d inline", e.summary.Chunks, e.summary.Inline)
	return Completed, nil
}

func (e *Encoder) fail(ctx context.Context, asm *reassembler, err error) (Status, error) {
	e.opts.Logger.Debugf("aborting after %d chunk(s), %d encoded chunk(s) were never written", asm.writeIndex, asm.buffered())
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Cancelled, ctxErr
	}
	return Failed, err
}

type workerPool struct {
	tasks   chan *WorkUnit
	results chan *IndexedResult
	wg      sync.WaitGroup

	closeOnce sync.Once
}

func newWorkerPool(ctx context.Context, opts Options, factory ChunkEncoderFactory) *workerPool {
	p := &workerPool{
		tasks:   make(chan *WorkUnit, opts.QueueCapacity),
		results: make(chan *IndexedResult, opts.QueueCapacity+opts.Workers),
	}
	for i := 0; i < opts.Workers; i++ {
		p.wg.Add(1)
		go p.work(ctx, i, factory(), opts.Logger)
	}
	return p
}

func (p *workerPool) trySubmit(wu *WorkUnit) bool {
	select {
	case p.tasks <- wu:
		return true
	default:
		return false
	}
}

func (p *workerPool) work(ctx context.Context, id int, encoder ChunkEncoder, log logging.Logger) {
	defer p.wg.Done()
	for {
		select {
		case wu, more := <-p.tasks:
			if !more {
				return
			}
			r := runChunk(encoder, wu)
			log.Debugf("worker %d encoded chunk %d", id, wu.Index)
			select {
			case p.results <- r:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// close stops accepting work and waits for the workers to exit.
// Workers blocked on a cancelled context return without finishing the queue.
func (p *workerPool) close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
		p.wg.Wait()
	})
}
