package morse

import (
	"fmt"
	"log"
)

func ExampleMatcher_EncodeChunk() {
	tree, err := DefaultTree()
	if err != nil {
		log.Fatal(err)
	}
	dict, err := DefaultDictionary(tree)
	if err != nil {
		log.Fatal(err)
	}
	codec, err := NewCodec(tree, dict, 10, Words)
	if err != nil {
		log.Fatal(err)
	}

	text, err := codec.NewMatcher(NewSeed()).EncodeChunk([]byte("Go"))
	if err != nil {
		log.Fatal(err)
	}

	data, err := Decode(text)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output: Go
}

func ExampleDecode() {
	data, err := Decode(".- .. / ... / -")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s %08b\n", data, data[0])
	// Output: A 01000001
}
