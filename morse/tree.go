package morse

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// Dot the short Morse symbol, carrying a zero bit
	Dot = '.'
	// Dash the long Morse symbol, carrying a one bit
	Dash = '-'

	// UnknownCharacter the plain text rendering of a code which has no character
	UnknownCharacter = "#"

	dotSlot  = 0
	dashSlot = 1
	noNode   = 0
)

var (
	errEmptyCode   = errors.New("code cannot be empty")
	errInvalidCode = errors.New("code must only contain dots and dashes")
)

type node struct {
	entry *CodeEntry
	// child node indices; the root lives at index zero, so zero also means "no child"
	children [2]int32
}

// Tree is a binary trie of Morse codes. Dots branch left and dashes branch right.
//
// Nodes are kept in an arena and address their children by index. A node carries an entry
// only if a code terminates on it. The tree must be fully built before it is shared, after
// which it is safe for concurrent readers.
type Tree struct {
	nodes    []node
	maxDepth int
	size     int
	byChar   map[string]string
}

// NewTree creates a tree populated with the given entries.
func NewTree(entries ...CodeEntry) (*Tree, error) {
	t := &Tree{
		nodes:  make([]node, 1, 2*len(entries)+1),
		byChar: make(map[string]string, len(entries)),
	}
	for i, e := range entries {
		if err := t.Insert(e); err != nil {
			return nil, &CodebookError{Index: i, Entry: e, Err: err}
		}
	}
	return t, nil
}

// Insert adds an entry to the tree. Inserting a code which already exists replaces the previous entry.
//
// Insert is a configuration time operation and must not be called concurrently with any other method.
func (t *Tree) Insert(e CodeEntry) error {
	if err := validateCode(e.Code); err != nil {
		return err
	}
	if utf8.RuneCountInString(e.Character) == 0 {
		return errors.New("character cannot be empty")
	}

	current := int32(0)
	for i := 0; i < len(e.Code); i++ {
		slot := slotOf(e.Code[i])
		next := t.nodes[current].children[slot]
		if next == noNode {
			t.nodes = append(t.nodes, node{})
			next = int32(len(t.nodes) - 1)
			t.nodes[current].children[slot] = next
		}
		current = next
	}

	if old := t.nodes[current].entry; old != nil {
		if t.byChar[normaliseCharacter(old.Character)] == old.Code {
			delete(t.byChar, normaliseCharacter(old.Character))
		}
	} else {
		t.size++
	}

	entry := e
	t.nodes[current].entry = &entry
	t.byChar[normaliseCharacter(e.Character)] = e.Code

	if len(e.Code) > t.maxDepth {
		t.maxDepth = len(e.Code)
	}
	return nil
}

// Lookup walks the tree from the root following the symbols of the code.
//
// The boolean result is false if the path does not exist. An existing node may still be
// internal only, in which case the returned entry is nil.
func (t *Tree) Lookup(code string) (*CodeEntry, bool) {
	current := int32(0)
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c != Dot && c != Dash {
			return nil, false
		}
		current = t.nodes[current].children[slotOf(c)]
		if current == noNode {
			return nil, false
		}
	}
	return t.nodes[current].entry, true
}

// Get returns the complete entry for the code, if there is one.
func (t *Tree) Get(code string) (CodeEntry, bool) {
	e, ok := t.Lookup(code)
	if !ok || e == nil {
		return CodeEntry{}, false
	}
	return *e, true
}

// Code returns the Morse code of a character. Letters are matched case insensitively.
func (t *Tree) Code(character string) (string, bool) {
	code, ok := t.byChar[normaliseCharacter(character)]
	return code, ok
}

// Translate reads Morse text as plain text: every code becomes its character and every word
// delimiter a space. Codes missing from the tree are rendered as UnknownCharacter.
func (t *Tree) Translate(morse string) string {
	var sb strings.Builder
	for i, word := range strings.Split(morse, "/") {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for _, code := range strings.Fields(word) {
			if e, ok := t.Get(code); ok {
				sb.WriteString(e.Character)
			} else {
				sb.WriteString(UnknownCharacter)
			}
		}
	}
	return sb.String()
}

// MaxDepth returns the length of the longest code in the tree.
func (t *Tree) MaxDepth() int {
	return t.maxDepth
}

// Len returns the number of complete entries in the tree.
func (t *Tree) Len() int {
	return t.size
}

// String renders the tree, one node per line, dots before dashes.
func (t *Tree) String() string {
	var sb strings.Builder
	t.print(&sb, 0, "", "")
	return sb.String()
}

func (t *Tree) print(sb *strings.Builder, index int32, prefix, childrenPrefix string) {
	sb.WriteString(prefix)
	if e := t.nodes[index].entry; e != nil {
		sb.WriteString(e.Character)
	} else {
		sb.WriteString("*")
	}
	sb.WriteByte('\n')

	var children []int32
	for _, c := range t.nodes[index].children {
		if c != noNode {
			children = append(children, c)
		}
	}
	for i, c := range children {
		if i < len(children)-1 {
			t.print(sb, c, childrenPrefix+"├── ", childrenPrefix+"│   ")
		} else {
			t.print(sb, c, childrenPrefix+"└── ", childrenPrefix+"    ")
		}
	}
}

func slotOf(symbol byte) int {
	if symbol == Dash {
		return dashSlot
	}
	return dotSlot
}

func validateCode(code string) error {
	if len(code) == 0 {
		return errEmptyCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] != Dot && code[i] != Dash {
			return errInvalidCode
		}
	}
	return nil
}

func normaliseCharacter(c string) string {
	return strings.ToUpper(c)
}
