package morse

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/NebulousLabs/fastrand"
)

// Method the strategy used to split the symbol string
type Method int8

const (
	// Words splits the symbols into dictionary words, falling back to single letters
	Words Method = iota
	// Letters splits the symbols into randomly sized single letters
	Letters
)

// String returns the string representation of the method
func (m Method) String() string {
	switch m {
	case Words:
		return "words"
	case Letters:
		return "letters"
	}
	return "unknown"
}

// Separator returns the delimiter placed between two units produced by the method.
func (m Method) Separator() string {
	if m == Letters {
		return LetterDelimiter
	}
	return WordDelimiter
}

// ParseMethod converts a method name into a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "words", "smart", "":
		return Words, nil
	case "letters", "dumb":
		return Letters, nil
	}
	return Words, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Codec holds the shared, read-only state of the encoder: the codebook tree, the dictionary and
// the matching configuration. A Codec is safe for concurrent use. Matchers are not, so every
// goroutine needs its own Matcher (see NewMatcher).
type Codec struct {
	tree   *Tree
	dict   *Dictionary
	budget int
	method Method
}

// NewCodec creates a new codec.
//
// budget is the number of matching dictionary words to collect before the longest one is
// selected. It must be greater than zero. The dictionary may be nil for the Letters method.
func NewCodec(tree *Tree, dict *Dictionary, budget int, method Method) (*Codec, error) {
	if budget <= 0 {
		return nil, ErrInvalidBudget
	}
	if tree == nil || tree.Len() == 0 {
		return nil, ErrEmptyCodebook
	}
	if _, ok := tree.Get(string(Dot)); !ok {
		return nil, ErrIncompleteCodebook
	}
	if _, ok := tree.Get(string(Dash)); !ok {
		return nil, ErrIncompleteCodebook
	}
	if method == Words && dict.Len() == 0 {
		return nil, ErrEmptyDictionary
	}
	return &Codec{
		tree:   tree,
		dict:   dict,
		budget: budget,
		method: method,
	}, nil
}

// Method returns the configured split method.
func (c *Codec) Method() Method {
	return c.method
}

// Tree returns the codebook tree.
func (c *Codec) Tree() *Tree {
	return c.tree
}

// NewMatcher creates a matcher driven by a pseudo random generator seeded with seed.
func (c *Codec) NewMatcher(seed int64) *Matcher {
	return &Matcher{
		codec: c,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// NewSeed returns a cryptographically random seed for NewMatcher.
func NewSeed() int64 {
	return int64(fastrand.Uint64n(math.MaxInt64))
}
