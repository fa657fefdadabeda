package b64

import "fmt"

func ExampleWrap() {
	fmt.Printf("%s", Wrap([]byte{0x00, 0xFF, 0x10}))
	// Output: AP8Q
}
