package obfuscate

import (
	"context"
	"io"

	"github.com/xitonix/mornary/hash"
	"github.com/xitonix/mornary/morse"
)

// Decoder is the type that decodes Morse text from an io.Reader into one or more io.Writer outputs
type Decoder struct {
	input      io.Reader
	output     io.Writer
	bufferSize int
	summary    Summary
}

// NewDecoder creates a new Decoder object
func NewDecoder(bufferSize int, input io.Reader, outputs ...io.Writer) *Decoder {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &Decoder{
		input:      input,
		output:     io.MultiWriter(outputs...),
		bufferSize: bufferSize,
	}
}

// Summary returns the statistics of the last Decode call
func (d *Decoder) Summary() Summary {
	return d.summary
}

// Decode decodes the Morse text of the Reader into the specified Writer(s).
//
// This method will return an error if the input contains anything other than dots, dashes,
// whitespace and word delimiters, or if the number of symbols is not a multiple of eight.
// The bytes decoded before the error has been detected have already been written.
func (d *Decoder) Decode() (Status, error) {
	return d.DecodeContext(context.Background())
}

// DecodeContext decodes the Morse text of the Reader into the specified Writer(s) and receives
// cancellation signal on the context parameter.
func (d *Decoder) DecodeContext(ctx context.Context) (Status, error) {
	d.summary = Summary{}
	digest := hash.NewSHA256()
	output := &countingWriter{w: io.MultiWriter(d.output, digest)}
	defer func() {
		d.summary.BytesWritten = output.n
		d.summary.Digest = digest.Sum()
	}()

	var packer morse.Packer
	buffer := make([]byte, d.bufferSize)
	decoded := make([]byte, 0, d.bufferSize/8+1)
	for {
		if err := ctx.Err(); err != nil {
			return Cancelled, err
		}
		count, err := d.input.Read(buffer)
		if count > 0 {
			d.summary.Chunks++
			d.summary.BytesRead += int64(count)
			var packErr error
			decoded, packErr = packer.Write(decoded[:0], buffer[:count])
			if len(decoded) > 0 {
				if _, err := output.Write(decoded); err != nil {
					return Failed, err
				}
			}
			if packErr != nil {
				return Failed, packErr
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return Failed, err
		}
	}

	if err := packer.Close(); err != nil {
		return Failed, err
	}
	return Completed, nil
}
