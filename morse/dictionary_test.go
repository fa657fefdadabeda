package morse

import (
	"strings"
	"testing"
)

func TestNewDictionary(t *testing.T) {
	tree, err := DefaultTree()
	if err != nil {
		t.Fatal(err)
	}

	// "at" and "et" do not collide, but "AT" is a duplicate of "at" once converted
	dict, err := NewDictionary(tree, "at", "AT", "  ", "et", "naïve")
	if err != nil {
		t.Fatalf("failed to build the dictionary: %v", err)
	}

	if dict.Len() != 2 {
		t.Fatalf("expected 2 entries, actual %d", dict.Len())
	}

	expected := []DictionaryEntry{
		{Word: ".- -", Compact: ".--"},
		{Word: ". -", Compact: ".-"},
	}
	for i, e := range expected {
		if dict.Entry(i) != e {
			t.Errorf("entry %d: expected %+v, actual %+v", i, e, dict.Entry(i))
		}
	}

	if skipped := dict.Skipped(); len(skipped) != 1 || skipped[0] != "naïve" {
		t.Errorf("expected 'naïve' to be skipped, actual %v", skipped)
	}
}

func TestLoadDictionaryWithoutEncodableWords(t *testing.T) {
	tree, _ := DefaultTree()
	_, err := LoadDictionary(strings.NewReader("日本\n\n"), tree)
	if err != ErrEmptyDictionary {
		t.Errorf("expected '%v', received '%v'", ErrEmptyDictionary, err)
	}
}

func TestDefaultDictionary(t *testing.T) {
	tree, _ := DefaultTree()
	dict, err := DefaultDictionary(tree)
	if err != nil {
		t.Fatalf("failed to load the default dictionary: %v", err)
	}
	if dict.Len() < 100 {
		t.Errorf("expected a reasonably sized dictionary, actual %d entries", dict.Len())
	}
	seen := make(map[string]bool)
	for i := 0; i < dict.Len(); i++ {
		e := dict.Entry(i)
		if seen[e.Word] {
			t.Errorf("duplicate entry %q", e.Word)
		}
		seen[e.Word] = true
		if strings.Replace(e.Word, " ", "", -1) != e.Compact {
			t.Errorf("compact form of %q is %q", e.Word, e.Compact)
		}
	}
}
