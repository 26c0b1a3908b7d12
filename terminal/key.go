package terminal

import (
	"fmt"
	"strings"
)

// Key represents a named (non-character) key
type Key uint16

const (
	KeyNone Key = iota

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeyInsert

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

func (m Modifier) String() string {
	var sb strings.Builder
	if m&ModCtrl != 0 {
		sb.WriteString("ctrl_")
	}
	if m&ModAlt != 0 {
		sb.WriteString("alt_")
	}
	if m&ModShift != 0 {
		sb.WriteString("shift_")
	}
	return sb.String()
}

// keyToName maps Key constants to canonical config string names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

// runeNames covers characters that are awkward to write in a config file
var runeNames = map[string]rune{
	"space":      ' ',
	"backslash":  '\\',
	"slash":      '/',
	"underscore": '_',
	"caret":      '^',
	"lbracket":   '[',
	"rbracket":   ']',
}

func init() {
	nameToKey = make(map[string]Key, len(keyToName))
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["esc"] = KeyEscape
	nameToKey["pgup"] = KeyPageUp
	nameToKey["pgdn"] = KeyPageDown
}

// KeyName returns the canonical string name for a Key constant
// Returns empty string for KeyNone
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a canonical name to a Key constant
// Returns KeyNone and false if name is unknown
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// KeyNames returns every canonical key name
func KeyNames() []string {
	names := make([]string, 0, len(keyToName))
	for k := KeyEscape; k <= KeyF12; k++ {
		names = append(names, keyToName[k])
	}
	return names
}

func (k Key) String() string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// ParseBinding resolves a config binding such as "q", "ctrl_c", "alt_page_down"
// or "shift_f5" into an event template that MatchesBinding compares against
func ParseBinding(s string) (Event, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return nil, fmt.Errorf("empty key binding")
	}

	// Single characters are case-sensitive
	if len(s) == 1 && s[0] >= 0x20 && s[0] < 0x7f {
		return CharEvent{Char: rune(s[0])}, nil
	}

	var mod Modifier
	for {
		switch {
		case strings.HasPrefix(name, "ctrl_"):
			mod |= ModCtrl
			name = name[len("ctrl_"):]
			continue
		case strings.HasPrefix(name, "alt_"):
			mod |= ModAlt
			name = name[len("alt_"):]
			continue
		case strings.HasPrefix(name, "shift_") && name != "shift_tab":
			mod |= ModShift
			name = name[len("shift_"):]
			continue
		}
		break
	}

	if k, ok := nameToKey[name]; ok {
		return KeyEvent{Key: k, Mod: mod}, nil
	}
	if r, ok := runeNames[name]; ok {
		return CharEvent{Char: r, Mod: mod}, nil
	}
	if len(name) == 1 && name[0] >= 0x20 && name[0] < 0x7f {
		c := rune(name[0])
		if mod&ModShift != 0 && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
			mod &^= ModShift
		}
		return CharEvent{Char: c, Mod: mod}, nil
	}
	return nil, fmt.Errorf("unknown key binding %q", s)
}

// MatchesBinding reports whether ev is the key or character described by binding
func MatchesBinding(ev, binding Event) bool {
	switch b := binding.(type) {
	case KeyEvent:
		k, ok := ev.(KeyEvent)
		return ok && k == b
	case CharEvent:
		c, ok := ev.(CharEvent)
		return ok && c == b
	}
	return false
}
