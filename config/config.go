// Package config discovers mornary.json and merges it with the command line arguments.
//
// Precedence is always: explicitly set command line flag > configuration file > built-in default.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xitonix/mornary/logging"
	"github.com/xitonix/mornary/morse"
)

const (
	// ErrCodeNotFound means the configuration file passed with -config does not exist.
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid means the configuration file could not be read or parsed, or a value is out of range.
	ErrCodeInvalid = "config_invalid"
)

const (
	// FileName the configuration file looked up in the working directory
	FileName = "mornary.json"

	DefaultWorkers   = 10
	DefaultBudget    = 10
	DefaultChunkSize = 1024
	DefaultLogLevel  = "warn"
	// MaxWorkers the upper bound the worker count is clamped to
	MaxWorkers = 64

	DefaultPollingInterval = 100 * time.Millisecond
	DefaultQuietPeriod     = 2 * time.Second
)

// CLIArgs holds the command line overrides. The *Set fields record whether the flag has been
// passed explicitly, so an explicit zero value can still override the file.
type CLIArgs struct {
	// ConfigPath the configuration file passed with -config. When empty, <cwd>/mornary.json is optional.
	ConfigPath string

	Workers    int
	WorkersSet bool

	Budget    int
	BudgetSet bool

	ChunkSize    int
	ChunkSizeSet bool

	Method    string
	MethodSet bool

	Codebook   string
	Dictionary string

	Verbose bool

	Source string
	Target string

	DeleteCompleted    bool
	DeleteCompletedSet bool

	Notify    bool
	NotifySet bool
}

// FileConfig is the structure of mornary.json
type FileConfig struct {
	Workers    int          `json:"workers"`
	Budget     int          `json:"budget"`
	ChunkSize  int          `json:"chunk_size"`
	Method     string       `json:"method"`
	Codebook   string       `json:"codebook"`
	Dictionary string       `json:"dictionary"`
	LogLevel   string       `json:"log_level"`
	Seed       int64        `json:"seed"`
	Watch      *WatchConfig `json:"watch"`
}

// WatchConfig configures the directory watcher service
type WatchConfig struct {
	Source          string `json:"source"`
	Target          string `json:"target"`
	PollingInterval string `json:"polling_interval"`
	QuietPeriod     string `json:"quiet_period"`
	DeleteCompleted bool   `json:"delete_completed"`
	Notify          bool   `json:"notify"`
}

// EffectiveConfig is the merged and validated configuration
type EffectiveConfig struct {
	// File the configuration file which has been read. Empty if there was none.
	File string

	Workers   int
	Budget    int
	ChunkSize int
	Method    morse.Method

	// Codebook and Dictionary are absolute paths. Empty means the embedded defaults.
	Codebook   string
	Dictionary string

	LogLevel string
	// Seed fixes the seeds of the matchers when not zero
	Seed int64

	Watch WatchSettings
}

// WatchSettings is the effective configuration of the directory watcher service
type WatchSettings struct {
	Source          string
	Target          string
	PollingInterval time.Duration
	QuietPeriod     time.Duration
	DeleteCompleted bool
	Notify          bool
}

// Error is a configuration error with a machine readable code
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s: configuration file %q not found", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Path == "" {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		if e.Err != nil {
			return fmt.Sprintf("%s: %q is invalid: %v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: %q is invalid", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code. It returns an empty string if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective reads the configuration file and merges it with the command line arguments.
//
// If cli.ConfigPath is set, the file must exist. Otherwise <cwd>/mornary.json is read if it exists.
// Relative paths in the file are resolved against the directory of the file, relative paths
// on the command line against cwd.
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, FileName)
	required := strings.TrimSpace(cli.ConfigPath) != ""
	if required {
		cfgPath = absCleanFrom(cwdAbs, cli.ConfigPath)
	}

	fc, exists, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	if !exists {
		if required {
			return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: os.ErrNotExist}
		}
		cfgPath = ""
	}

	return merge(cwdAbs, cli, fc, cfgPath)
}

func merge(cwd string, cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	invalid := func(format string, args ...interface{}) error {
		return &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf(format, args...)}
	}
	fileDir := cwd
	if cfgPath != "" {
		fileDir = filepath.Dir(cfgPath)
	}

	workers := pick(DefaultWorkers, fc.Workers, cli.Workers, cli.WorkersSet)
	// out of range worker counts are clamped, not rejected
	if workers < 1 {
		workers = 1
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	budget := pick(DefaultBudget, fc.Budget, cli.Budget, cli.BudgetSet)
	if budget <= 0 {
		return EffectiveConfig{}, invalid("the budget must be greater than zero, actual %d", budget)
	}

	chunkSize := pick(DefaultChunkSize, fc.ChunkSize, cli.ChunkSize, cli.ChunkSizeSet)
	if chunkSize <= 0 {
		return EffectiveConfig{}, invalid("the chunk size must be greater than zero, actual %d", chunkSize)
	}

	methodName := fc.Method
	if cli.MethodSet {
		methodName = cli.Method
	}
	method, err := morse.ParseMethod(methodName)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	codebook := absCleanFrom(fileDir, fc.Codebook)
	if strings.TrimSpace(cli.Codebook) != "" {
		codebook = absCleanFrom(cwd, cli.Codebook)
	}
	dictionary := absCleanFrom(fileDir, fc.Dictionary)
	if strings.TrimSpace(cli.Dictionary) != "" {
		dictionary = absCleanFrom(cwd, cli.Dictionary)
	}

	logLevel := DefaultLogLevel
	if strings.TrimSpace(fc.LogLevel) != "" {
		logLevel = strings.ToLower(strings.TrimSpace(fc.LogLevel))
	}
	if cli.Verbose {
		logLevel = "debug"
	}

	watch, err := mergeWatch(cwd, fileDir, cli, fc.Watch)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	return EffectiveConfig{
		File:       cfgPath,
		Workers:    workers,
		Budget:     budget,
		ChunkSize:  chunkSize,
		Method:     method,
		Codebook:   codebook,
		Dictionary: dictionary,
		LogLevel:   logLevel,
		Seed:       fc.Seed,
		Watch:      watch,
	}, nil
}

func mergeWatch(cwd, fileDir string, cli CLIArgs, wc *WatchConfig) (WatchSettings, error) {
	if wc == nil {
		wc = &WatchConfig{}
	}
	ws := WatchSettings{
		Source:          absCleanFrom(fileDir, wc.Source),
		Target:          absCleanFrom(fileDir, wc.Target),
		PollingInterval: DefaultPollingInterval,
		QuietPeriod:     DefaultQuietPeriod,
		DeleteCompleted: wc.DeleteCompleted,
		Notify:          wc.Notify,
	}
	if strings.TrimSpace(cli.Source) != "" {
		ws.Source = absCleanFrom(cwd, cli.Source)
	}
	if strings.TrimSpace(cli.Target) != "" {
		ws.Target = absCleanFrom(cwd, cli.Target)
	}
	if cli.DeleteCompletedSet {
		ws.DeleteCompleted = cli.DeleteCompleted
	}
	if cli.NotifySet {
		ws.Notify = cli.Notify
	}

	var err error
	if ws.PollingInterval, err = parseDuration("watch.polling_interval", wc.PollingInterval, DefaultPollingInterval); err != nil {
		return WatchSettings{}, err
	}
	if ws.QuietPeriod, err = parseDuration("watch.quiet_period", wc.QuietPeriod, DefaultQuietPeriod); err != nil {
		return WatchSettings{}, err
	}
	return ws, nil
}

// Codec builds the codec described by the configuration, using the embedded codebook and
// dictionary unless a file has been configured. Resources which cannot be loaded are reported
// as ErrCodeInvalid errors.
func (c EffectiveConfig) Codec(log logging.Logger) (*morse.Codec, error) {
	tree, err := c.tree()
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Path: c.Codebook, Err: err}
	}

	var dict *morse.Dictionary
	if c.Method == morse.Words {
		if dict, err = c.dictionary(tree); err != nil {
			return nil, &Error{Code: ErrCodeInvalid, Path: c.Dictionary, Err: err}
		}
		if skipped := dict.Skipped(); len(skipped) > 0 {
			log.Debugf("skipped %d dictionary word(s) with characters missing from the codebook: %s",
				len(skipped), strings.Join(skipped, ", "))
		}
	}
	codec, err := morse.NewCodec(tree, dict, c.Budget, c.Method)
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Path: c.Codebook, Err: err}
	}
	return codec, nil
}

func (c EffectiveConfig) tree() (*morse.Tree, error) {
	if c.Codebook == "" {
		return morse.DefaultTree()
	}
	f, err := os.Open(c.Codebook)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return morse.LoadTree(f)
}

func (c EffectiveConfig) dictionary(tree *morse.Tree) (*morse.Dictionary, error) {
	if c.Dictionary == "" {
		return morse.DefaultDictionary(tree)
	}
	f, err := os.Open(c.Dictionary)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return morse.LoadDictionary(f, tree)
}

// pick returns the command line value if it has been set, then the non-zero file value, then the default
func pick(def, file, cli int, cliSet bool) int {
	if cliSet {
		return cli
	}
	if file != 0 {
		return file
	}
	return def
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, actual %s", field, value)
	}
	return d, nil
}

// absCleanFrom makes p absolute relative to base. An empty p stays empty.
func absCleanFrom(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = filepath.Clean(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig reads and parses the JSON configuration file.
// A missing file is not an error, exists reports whether it has been found.
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
