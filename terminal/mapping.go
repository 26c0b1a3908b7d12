package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

// ControlMapping associates a byte pattern with the event it decodes to
type ControlMapping struct {
	Pattern string
	Event   Event // KeyEvent or CharEvent template
}

// MappingTable is an ordered, validated set of control mappings with a
// first-byte index for lookup
type MappingTable struct {
	mappings []ControlMapping
	byFirst  [256][]int
}

// NewMappingTable validates and indexes mappings. A pattern may not be empty,
// duplicated, or a strict prefix of another pattern: the decoder commits to
// the first exact match, so a shorter pattern would shadow the longer one
// depending on how input happens to be split into chunks
func NewMappingTable(mappings []ControlMapping) (*MappingTable, error) {
	t := &MappingTable{mappings: make([]ControlMapping, len(mappings))}
	copy(t.mappings, mappings)

	seen := make(map[string]int, len(mappings))
	for i, m := range t.mappings {
		if m.Pattern == "" {
			return nil, fmt.Errorf("mapping %d: empty pattern", i)
		}
		switch m.Event.(type) {
		case KeyEvent, CharEvent:
		default:
			return nil, fmt.Errorf("mapping %d (%q): event must be a key or char event", i, m.Pattern)
		}
		if j, dup := seen[m.Pattern]; dup {
			return nil, fmt.Errorf("mapping %d: duplicate pattern %q (first at %d)", i, m.Pattern, j)
		}
		seen[m.Pattern] = i

		first := m.Pattern[0]
		for _, j := range t.byFirst[first] {
			other := t.mappings[j].Pattern
			if strings.HasPrefix(m.Pattern, other) {
				return nil, fmt.Errorf("mapping %d: pattern %q shadowed by prefix %q", i, m.Pattern, other)
			}
			if strings.HasPrefix(other, m.Pattern) {
				return nil, fmt.Errorf("mapping %d: pattern %q is a prefix of %q", i, m.Pattern, other)
			}
		}
		t.byFirst[first] = append(t.byFirst[first], i)
	}
	return t, nil
}

// MustMappingTable is NewMappingTable for static tables
func MustMappingTable(mappings []ControlMapping) *MappingTable {
	t, err := NewMappingTable(mappings)
	if err != nil {
		panic(err)
	}
	return t
}

// Match looks up the start of p. exact reports that a pattern is a prefix
// of p, returned in m; partial reports that p is a strict prefix of at
// least one pattern, so more input could still complete a match
func (t *MappingTable) Match(p []byte) (m ControlMapping, exact bool, partial bool) {
	if len(p) == 0 {
		return ControlMapping{}, false, false
	}
	for _, i := range t.byFirst[p[0]] {
		pat := t.mappings[i].Pattern
		if len(p) >= len(pat) {
			if string(p[:len(pat)]) == pat {
				return t.mappings[i], true, false
			}
		} else if pat[:len(p)] == string(p) {
			partial = true
		}
	}
	return ControlMapping{}, false, partial
}

// Len returns the number of mappings
func (t *MappingTable) Len() int {
	return len(t.mappings)
}

// Mappings returns a copy of the table in order
func (t *MappingTable) Mappings() []ControlMapping {
	out := make([]ControlMapping, len(t.mappings))
	copy(out, t.mappings)
	return out
}

// sequence is a CSI/SS3 body after the introducer
type sequence struct {
	body string
	key  Key
}

// CSI final-letter keys (ESC [ X, xterm modified form ESC [ 1 ; m X)
var csiLetterKeys = []sequence{
	{"A", KeyUp},
	{"B", KeyDown},
	{"C", KeyRight},
	{"D", KeyLeft},
	{"H", KeyHome},
	{"F", KeyEnd},
}

// F1-F4 only have the modified CSI form; unmodified they arrive as SS3
var csiModifiedOnly = []sequence{
	{"P", KeyF1},
	{"Q", KeyF2},
	{"R", KeyF3},
	{"S", KeyF4},
}

// CSI tilde keys (ESC [ n ~, modified ESC [ n ; m ~)
var csiTildeKeys = []struct {
	code int
	key  Key
}{
	{1, KeyHome},
	{2, KeyInsert},
	{3, KeyDelete},
	{4, KeyEnd},
	{5, KeyPageUp},
	{6, KeyPageDown},
	{7, KeyHome},
	{8, KeyEnd},
	{11, KeyF1},
	{12, KeyF2},
	{13, KeyF3},
	{14, KeyF4},
	{15, KeyF5},
	{17, KeyF6},
	{18, KeyF7},
	{19, KeyF8},
	{20, KeyF9},
	{21, KeyF10},
	{23, KeyF11},
	{24, KeyF12},
}

// Linux console function keys (ESC [ [ X)
var linuxConsoleKeys = []sequence{
	{"A", KeyF1},
	{"B", KeyF2},
	{"C", KeyF3},
	{"D", KeyF4},
	{"E", KeyF5},
}

// SS3 keys (ESC O X)
var ss3Keys = []sequence{
	{"A", KeyUp},
	{"B", KeyDown},
	{"C", KeyRight},
	{"D", KeyLeft},
	{"H", KeyHome},
	{"F", KeyEnd},
	{"P", KeyF1},
	{"Q", KeyF2},
	{"R", KeyF3},
	{"S", KeyF4},
	{"M", KeyEnter}, // keypad enter
}

// Numeric keypad in application mode (ESC O X) decodes to the character
var ss3Keypad = map[byte]rune{
	'X': '=', 'j': '*', 'k': '+', 'l': ',', 'm': '-', 'n': '.', 'o': '/',
	'p': '0', 'q': '1', 'r': '2', 's': '3', 't': '4',
	'u': '5', 'v': '6', 'w': '7', 'x': '8', 'y': '9',
}

// xterm encodes modifiers as 1 + (shift|alt<<1|ctrl<<2), matching Modifier bits
func xtermModifier(param int) Modifier {
	return Modifier(param - 1)
}

// DefaultMappings returns the xterm/vt table for common terminals
func DefaultMappings() []ControlMapping {
	const csi, ss3 = "\x1b[", "\x1bO"
	var m []ControlMapping
	add := func(pattern string, ev Event) {
		m = append(m, ControlMapping{Pattern: pattern, Event: ev})
	}

	for _, s := range csiLetterKeys {
		add(csi+s.body, KeyEvent{Key: s.key})
	}
	add(csi+"Z", KeyEvent{Key: KeyBacktab})
	for param := 2; param <= 8; param++ {
		p := strconv.Itoa(param)
		for _, s := range csiLetterKeys {
			add(csi+"1;"+p+s.body, KeyEvent{Key: s.key, Mod: xtermModifier(param)})
		}
		for _, s := range csiModifiedOnly {
			add(csi+"1;"+p+s.body, KeyEvent{Key: s.key, Mod: xtermModifier(param)})
		}
	}

	for _, s := range csiTildeKeys {
		code := strconv.Itoa(s.code)
		add(csi+code+"~", KeyEvent{Key: s.key})
		for param := 2; param <= 8; param++ {
			add(csi+code+";"+strconv.Itoa(param)+"~", KeyEvent{Key: s.key, Mod: xtermModifier(param)})
		}
	}

	for _, s := range linuxConsoleKeys {
		add(csi+"["+s.body, KeyEvent{Key: s.key})
	}

	for _, s := range ss3Keys {
		add(ss3+s.body, KeyEvent{Key: s.key})
	}
	for _, b := range []byte("Xjklmnopqrstuvwxy") {
		add(ss3+string(b), CharEvent{Char: ss3Keypad[b]})
	}

	// Single control bytes
	add("\r", KeyEvent{Key: KeyEnter})
	add("\n", KeyEvent{Key: KeyEnter})
	add("\t", KeyEvent{Key: KeyTab})
	add("\x7f", KeyEvent{Key: KeyBackspace})
	add("\x08", KeyEvent{Key: KeyBackspace})
	add("\x00", CharEvent{Char: ' ', Mod: ModCtrl})
	for c := byte(0x01); c <= 0x1a; c++ {
		switch c {
		case '\r', '\n', '\t', '\x08':
			continue
		}
		add(string([]byte{c}), CharEvent{Char: rune('a' + c - 1), Mod: ModCtrl})
	}
	add("\x1c", CharEvent{Char: '\\', Mod: ModCtrl})
	add("\x1d", CharEvent{Char: ']', Mod: ModCtrl})
	add("\x1e", CharEvent{Char: '^', Mod: ModCtrl})
	add("\x1f", CharEvent{Char: '_', Mod: ModCtrl})

	return m
}

// DefaultMappingTable returns the validated default table
func DefaultMappingTable() *MappingTable {
	return MustMappingTable(DefaultMappings())
}
