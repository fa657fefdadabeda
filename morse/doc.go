// Package morse implements the reversible transformation between raw bytes and Morse code text.
//
// Every byte is expanded into eight symbols (most significant bit first) where a zero bit becomes a dot
// and a one bit becomes a dash. A Matcher then cuts the symbol string into dictionary words or single
// letters so that the result reads like ordinary Morse code:
//
//	tree, err := morse.DefaultTree()
//	if err != nil {
//		log.Fatal(err)
//	}
//	dict, err := morse.DefaultDictionary(tree)
//	if err != nil {
//		log.Fatal(err)
//	}
//	codec, err := morse.NewCodec(tree, dict, 10, morse.Words)
//	if err != nil {
//		log.Fatal(err)
//	}
//	text, err := codec.NewMatcher(morse.NewSeed()).EncodeChunk([]byte("Go"))
//
// Decoding never needs the codebook or the dictionary. Spaces and word delimiters are dropped and the
// remaining dots and dashes are packed back into bytes:
//
//	data, err := morse.Decode(text)
package morse
