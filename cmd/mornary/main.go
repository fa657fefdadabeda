// Command mornary disguises any data as Morse code and restores it.
//
//	mornary -e "text"            encode the text
//	mornary -d ".-.. --- / ..."  decode the Morse text
//	mornary -E file -o out       encode the file
//	mornary -D file -o out       decode the file
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xitonix/mornary/b64"
	"github.com/xitonix/mornary/config"
	"github.com/xitonix/mornary/hash"
	"github.com/xitonix/mornary/logging"
	"github.com/xitonix/mornary/morse"
	"github.com/xitonix/mornary/obfuscate"
	"golang.org/x/crypto/ssh/terminal"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// hiddenFlags are accepted but not listed by -h
var hiddenFlags = map[string]bool{"n": true}

var errVerification = errors.New("verification failed: the decoded data does not match the input")

type usageError struct {
	msg string
}

func (u *usageError) Error() string {
	return u.msg
}

type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	force          bool
	log            logging.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    logging.Discard(),
	}
	err := c.run(args)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	}

	fmt.Fprintf(stderr, "mornary: %v\n", err)
	var ue *usageError
	if errors.As(err, &ue) || config.Code(err) != "" {
		return exitUsage
	}
	return exitFailure
}

func (c *cli) run(args []string) error {
	fs := flag.NewFlagSet("mornary", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	encodeText := fs.String("e", "", "encode the `text`")
	decodeText := fs.String("d", "", "decode the `morse` text")
	encodeFile := fs.String("E", "", "encode the `file`")
	decodeFile := fs.String("D", "", "decode the `file`")
	output := fs.String("o", "", "write the result to `file` instead of stdout")
	threads := fs.Int("t", config.DefaultWorkers, "the number of encoding workers")
	budget := fs.Int("n", config.DefaultBudget, "the number of matching words to pick the longest one from")
	chunk := fs.Int("chunk", config.DefaultChunkSize, "the number of input bytes encoded by a worker at once")
	method := fs.String("method", morse.Words.String(), "the encoding method: words or letters")
	verify := fs.Bool("verify", false, "decode the encoded result and compare the SHA256 checksums")
	plain := fs.Bool("plain", false, "print what the encoded Morse reads as (stdout only)")
	force := fs.Bool("f", false, "overwrite the output file without asking")
	verbose := fs.Bool("v", false, "verbose logging")
	cfgPath := fs.String("config", "", "the configuration `file` (default ./"+config.FileName+" if it exists)")
	codebook := fs.String("codebook", "", "a JSON codebook `file` to use instead of the international Morse code")
	dictionary := fs.String("dictionary", "", "a word list `file` to use instead of the built-in one")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &usageError{msg: err.Error()}
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return &usageError{msg: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var modes []string
	for _, m := range []string{"e", "d", "E", "D"} {
		if set[m] {
			modes = append(modes, "-"+m)
		}
	}
	if len(modes) != 1 {
		fs.Usage()
		if len(modes) == 0 {
			return &usageError{msg: "one of -e, -d, -E or -D is required"}
		}
		return &usageError{msg: fmt.Sprintf("%s cannot be used together", strings.Join(modes, ", "))}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		ConfigPath:   *cfgPath,
		Workers:      *threads,
		WorkersSet:   set["t"],
		Budget:       *budget,
		BudgetSet:    set["n"],
		ChunkSize:    *chunk,
		ChunkSizeSet: set["chunk"],
		Method:       *method,
		MethodSet:    set["method"],
		Codebook:     *codebook,
		Dictionary:   *dictionary,
		Verbose:      *verbose,
	})
	if err != nil {
		return err
	}

	c.log, err = logging.New(eff.LogLevel, c.stderr)
	if err != nil {
		return &config.Error{Code: config.ErrCodeInvalid, Path: eff.File, Err: err}
	}
	c.force = *force
	if eff.File != "" {
		c.log.Debugf("loaded %s", eff.File)
	}

	switch {
	case set["e"]:
		return c.runEncode(eff, strings.NewReader(*encodeText), *output, *verify, *plain)
	case set["d"]:
		return c.runDecode(strings.NewReader(*decodeText), *output)
	case set["E"]:
		in, err := os.Open(*encodeFile)
		if err != nil {
			return err
		}
		defer in.Close()
		return c.runEncode(eff, in, *output, *verify, *plain)
	default:
		in, err := os.Open(*decodeFile)
		if err != nil {
			return err
		}
		defer in.Close()
		return c.runDecode(in, *output)
	}
}

func (c *cli) runEncode(eff config.EffectiveConfig, input io.Reader, outputPath string, verify, plain bool) error {
	codec, err := eff.Codec(c.log)
	if err != nil {
		return err
	}

	if outputPath == "" {
		var buf bytes.Buffer
		out := io.Writer(c.stdout)
		if plain {
			out = io.MultiWriter(c.stdout, &buf)
		}
		if err := c.encode(eff, codec, input, out, verify); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout)
		if plain {
			fmt.Fprintln(c.stdout, codec.Tree().Translate(buf.String()))
		}
		return nil
	}

	if plain {
		c.log.Warning("-plain is ignored when writing to a file")
	}
	return c.writeFile(outputPath, func(w io.Writer) error {
		return c.encode(eff, codec, input, w, verify)
	})
}

func (c *cli) encode(eff config.EffectiveConfig, codec *morse.Codec, input io.Reader, output io.Writer, verify bool) error {
	opts := obfuscate.Options{
		ChunkSize: eff.ChunkSize,
		Workers:   eff.Workers,
		Separator: codec.Method().Separator(),
		Logger:    c.log,
	}
	factory := obfuscate.MatcherFactory(codec, eff.Seed)
	if !verify {
		encoder := obfuscate.NewEncoder(opts, factory, input, output)
		_, err := encoder.Encode()
		c.logSummary("encoded", encoder.Summary())
		return err
	}

	pr, pw := io.Pipe()
	decoder := obfuscate.NewDecoder(0, pr, io.Discard)
	decoded := make(chan error, 1)
	go func() {
		_, err := decoder.Decode()
		// unblocks the encoder if decoding stops early
		pr.CloseWithError(err)
		decoded <- err
	}()

	encoder := obfuscate.NewEncoder(opts, factory, input, output, pw)
	_, err := encoder.Encode()
	pw.CloseWithError(err)
	decodeErr := <-decoded
	c.logSummary("encoded", encoder.Summary())
	if err != nil {
		return err
	}
	if decodeErr != nil {
		return fmt.Errorf("verification failed: %w", decodeErr)
	}

	expected, actual := encoder.Summary().Digest, decoder.Summary().Digest
	if !bytes.Equal(expected, actual) {
		c.log.Errorf("input sha256 %s, decoded sha256 %s", hash.Hex(expected), hash.Hex(actual))
		return errVerification
	}
	c.log.Infof("verified sha256 %s", hash.Hex(actual))
	return nil
}

func (c *cli) runDecode(input io.Reader, outputPath string) error {
	if outputPath != "" {
		return c.writeFile(outputPath, func(w io.Writer) error {
			return c.decode(input, w)
		})
	}

	var buf bytes.Buffer
	if err := c.decode(input, &buf); err != nil {
		return err
	}
	return c.render(buf.Bytes())
}

func (c *cli) decode(input io.Reader, output io.Writer) error {
	decoder := obfuscate.NewDecoder(0, input, output)
	_, err := decoder.Decode()
	c.logSummary("decoded", decoder.Summary())
	return err
}

// render prints text as is. Binary data is written raw, unless stdout is a terminal,
// in which case it is shown base64 encoded.
func (c *cli) render(data []byte) error {
	c.log.Debugf("decoded sha256 %s", hash.Hex(hash.SHA256(data)))
	if morse.IsText(data) {
		if _, err := c.stdout.Write(data); err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			_, err := fmt.Fprintln(c.stdout)
			return err
		}
		return nil
	}

	if isTerminal(c.stdout) {
		c.log.Warning("the decoded data is binary, printing it base64 encoded (use -o to save the raw bytes)")
		_, err := c.stdout.Write(b64.Wrap(data))
		return err
	}
	_, err := c.stdout.Write(data)
	return err
}

func (c *cli) writeFile(path string, write func(w io.Writer) error) error {
	if err := c.checkOverwrite(path); err != nil {
		return err
	}
	f, err := createAtomic(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Abort()
		return err
	}
	return f.Commit()
}

func (c *cli) logSummary(op string, s obfuscate.Summary) {
	c.log.Debugf("%s %d chunk(s) (%d inline), read %d byte(s), wrote %d byte(s), sha256 %s",
		op, s.Chunks, s.Inline, s.BytesRead, s.BytesWritten, hash.Hex(s.Digest))
}

func (c *cli) interactive() bool {
	return isTerminal(c.stdin)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && terminal.IsTerminal(int(f.Fd()))
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: mornary (-e text | -d morse | -E file | -D file) [options]")
	fmt.Fprintln(out, "Disguises any data as Morse code.")
	fmt.Fprintln(out)
	fs.VisitAll(func(f *flag.Flag) {
		if hiddenFlags[f.Name] {
			return
		}
		name, usage := flag.UnquoteUsage(f)
		line := "  -" + f.Name
		if name != "" {
			line += " " + name
		}
		line += "\n    \t" + strings.ReplaceAll(usage, "\n", "\n    \t")
		if f.DefValue != "" && f.DefValue != "false" {
			line += fmt.Sprintf(" (default %v)", f.DefValue)
		}
		fmt.Fprintln(out, line)
	})
}
