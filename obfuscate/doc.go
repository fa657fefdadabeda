// Package obfuscate disguises any io.Reader as Morse code text and reverses the process.
//
// Encoder splits the input into fixed size chunks and encodes them on a pool of workers. The results
// are written in the original chunk order, so the output is laid out exactly as a single threaded run
// would lay it out, while only a bounded number of chunks is held in memory:
//
//	codec, err := morse.NewCodec(tree, dict, 10, morse.Words)
//	if err != nil {
//		log.Fatal(err)
//	}
//	encoder := obfuscate.NewEncoder(obfuscate.Options{Workers: 8}, obfuscate.MatcherFactory(codec, 0), input, output)
//	status, err := encoder.Encode()
//
// Decoder streams Morse text back into the original bytes.
//
// For long running services, an Engine receives Tasks from a Tap and processes them concurrently:
//
//	tap, err := taps.YourImplementationOfTap(...)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	engine := obfuscate.NewEngine(workers, true, options, factory, tap)
//	engine.Start()
//
//	signals := make(chan os.Signal, 1)
//	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
//	<-signals
//
//	engine.Stop()
package obfuscate
