package terminal

import (
	"strings"
	"testing"
)

func TestDefaultMappingTableValid(t *testing.T) {
	tbl, err := NewMappingTable(DefaultMappings())
	if err != nil {
		t.Fatalf("default table rejected: %v", err)
	}
	if tbl.Len() == 0 {
		t.Fatal("Expected non-empty default table")
	}
}

func TestMappingTableRejectsPrefix(t *testing.T) {
	tests := []struct {
		name     string
		mappings []ControlMapping
		wantErr  string
	}{
		{
			name: "earlier shadows later",
			mappings: []ControlMapping{
				{Pattern: "\x1b[1", Event: KeyEvent{Key: KeyHome}},
				{Pattern: "\x1b[1~", Event: KeyEvent{Key: KeyHome}},
			},
			wantErr: "shadowed",
		},
		{
			name: "later is prefix of earlier",
			mappings: []ControlMapping{
				{Pattern: "\x1b[1~", Event: KeyEvent{Key: KeyHome}},
				{Pattern: "\x1b[1", Event: KeyEvent{Key: KeyHome}},
			},
			wantErr: "prefix",
		},
		{
			name: "duplicate",
			mappings: []ControlMapping{
				{Pattern: "\r", Event: KeyEvent{Key: KeyEnter}},
				{Pattern: "\r", Event: KeyEvent{Key: KeyTab}},
			},
			wantErr: "duplicate",
		},
		{
			name:     "empty",
			mappings: []ControlMapping{{Pattern: "", Event: KeyEvent{Key: KeyEnter}}},
			wantErr:  "empty",
		},
		{
			name:     "non key event",
			mappings: []ControlMapping{{Pattern: "x", Event: ResizeEvent{}}},
			wantErr:  "key or char",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMappingTable(tt.mappings)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMappingTableMatch(t *testing.T) {
	tbl := DefaultMappingTable()

	tests := []struct {
		input   string
		exact   bool
		partial bool
		want    Event
	}{
		{"\x1b[A", true, false, KeyEvent{Key: KeyUp}},
		{"\x1b[Axyz", true, false, KeyEvent{Key: KeyUp}},
		{"\x1b[1;5C", true, false, KeyEvent{Key: KeyRight, Mod: ModCtrl}},
		{"\x1b[6;2~", true, false, KeyEvent{Key: KeyPageDown, Mod: ModShift}},
		{"\x1b[24~", true, false, KeyEvent{Key: KeyF12}},
		{"\x1bOP", true, false, KeyEvent{Key: KeyF1}},
		{"\x1bOq", true, false, CharEvent{Char: '1'}},
		{"\x1b[Z", true, false, KeyEvent{Key: KeyBacktab}},
		{"\r", true, false, KeyEvent{Key: KeyEnter}},
		{"\x7f", true, false, KeyEvent{Key: KeyBackspace}},
		{"\x03", true, false, CharEvent{Char: 'c', Mod: ModCtrl}},
		{"\x00", true, false, CharEvent{Char: ' ', Mod: ModCtrl}},
		{"\x1f", true, false, CharEvent{Char: '_', Mod: ModCtrl}},
		{"\x1b", false, true, nil},
		{"\x1b[", false, true, nil},
		{"\x1b[1;", false, true, nil},
		{"\x1b[2", false, true, nil},
		{"\x1bx", false, false, nil},
		{"a", false, false, nil},
	}

	for _, tt := range tests {
		m, exact, partial := tbl.Match([]byte(tt.input))
		if exact != tt.exact || partial != tt.partial {
			t.Errorf("Match(%q): exact=%v partial=%v, want %v/%v", tt.input, exact, partial, tt.exact, tt.partial)
			continue
		}
		if tt.exact && m.Event != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.input, m.Event, tt.want)
		}
	}
}

func TestMatchFirstInTableOrder(t *testing.T) {
	tbl := MustMappingTable([]ControlMapping{
		{Pattern: "ab", Event: CharEvent{Char: '1'}},
		{Pattern: "ac", Event: CharEvent{Char: '2'}},
	})
	m, exact, _ := tbl.Match([]byte("acb"))
	if !exact || m.Event != (CharEvent{Char: '2'}) {
		t.Errorf("Expected match on second pattern, got %v exact=%v", m.Event, exact)
	}
}
