// Directory watcher service. Encodes every file dropped into the source directory into
// <target>/<relative path>/<name>.morse
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/xitonix/mornary/config"
	"github.com/xitonix/mornary/logging"
	"github.com/xitonix/mornary/obfuscate"
	"github.com/xitonix/mornary/taps"
)

type watchTap interface {
	obfuscate.Tap
	Errors() <-chan error
	Progress() <-chan *taps.Result
}

func main() {
	source := flag.String("source", "", "the directory to watch")
	target := flag.String("target", "", "the directory to write the encoded files to")
	useNotify := flag.Bool("notify", false, "use the filesystem notifications of the OS instead of polling")
	deleteCompleted := flag.Bool("delete", false, "delete the source files once they have been encoded")
	parallel := flag.Uint("p", 2, "the number of files to encode at the same time")
	threads := flag.Int("t", config.DefaultWorkers, "the number of encoding workers per file")
	verbose := flag.Bool("v", false, "verbose logging")
	cfgPath := flag.String("config", "", "the configuration file (default ./"+config.FileName+" if it exists)")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		ConfigPath:         *cfgPath,
		Workers:            *threads,
		WorkersSet:         set["t"],
		Verbose:            *verbose,
		Source:             *source,
		Target:             *target,
		DeleteCompleted:    *deleteCompleted,
		DeleteCompletedSet: set["delete"],
		Notify:             *useNotify,
		NotifySet:          set["notify"],
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if eff.Watch.Source == "" || eff.Watch.Target == "" {
		fmt.Fprintln(os.Stderr, "both the source and the target directories are required")
		flag.Usage()
		os.Exit(2)
	}

	log, err := logging.New(eff.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *parallel == 0 || *parallel > 1<<16-1 {
		log.Fatalf("invalid parallelism %d", *parallel)
	}

	codec, err := eff.Codec(log)
	if err != nil {
		log.Fatal(err)
	}

	opts := taps.Options{
		Source:          eff.Watch.Source,
		Target:          eff.Watch.Target,
		PollingInterval: eff.Watch.PollingInterval,
		QuietPeriod:     eff.Watch.QuietPeriod,
		NotifyErrors:    true,
		ReportProgress:  true,
		DeleteCompleted: eff.Watch.DeleteCompleted,
		Logger:          log,
	}

	var tap watchTap
	if eff.Watch.Notify {
		tap, err = taps.NewDirectoryWatcherTap(opts)
	} else {
		tap, err = taps.NewFilesystemTap(opts)
	}
	if err != nil {
		log.Fatal(err)
	}

	engine := obfuscate.NewEngine(uint16(*parallel), false, obfuscate.Options{
		ChunkSize: eff.ChunkSize,
		Workers:   eff.Workers,
		Separator: codec.Method().Separator(),
		Logger:    log,
	}, obfuscate.MatcherFactory(codec, eff.Seed), tap)
	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for err := range tap.Errors() {
			log.Error(err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := range tap.Progress() {
			if p.Error != nil {
				log.Warningf("%s > %s %s: %s", p.Input.Name, p.Output.Name, p.Status, p.Error)
				continue
			}
			log.Infof("%s > %s %s", p.Input.Name, p.Output.Name, p.Status)
		}
	}()

	engine.Start()
	log.Infof("watching %s, press Ctrl+C to stop", eff.Watch.Source)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	engine.Stop()
	wg.Wait()
	log.Info("the engine has been stopped successfully")
}
