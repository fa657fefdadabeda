package hash

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestDigestMatchesSHA256(t *testing.T) {
	testCases := []struct {
		title string
		input string
	}{
		{title: "empty_input", input: ""},
		{title: "short_input", input: "a"},
		{title: "long_input", input: strings.Repeat("mornary ", 1000)},
	}
	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			d := NewSHA256()
			if _, err := io.Copy(d, strings.NewReader(tc.input)); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(d.Sum(), SHA256([]byte(tc.input))) {
				t.Error("the streaming digest does not match the one shot hash")
			}
		})
	}
}

func TestHex(t *testing.T) {
	const expected = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if actual := Hex(SHA256(nil)); actual != expected {
		t.Errorf("expected %s, actual %s", expected, actual)
	}
}
