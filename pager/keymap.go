package pager

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/logpager/terminal"
)

// Action is a browsing command bound to keys
type Action string

const (
	ActionQuit        Action = "quit"
	ActionDown        Action = "down"
	ActionUp          Action = "up"
	ActionPageDown    Action = "page_down"
	ActionPageUp      Action = "page_up"
	ActionHalfDown    Action = "half_down"
	ActionHalfUp      Action = "half_up"
	ActionTop         Action = "top"
	ActionBottom      Action = "bottom"
	ActionLeft        Action = "left"
	ActionRight       Action = "right"
	ActionFilter      Action = "filter"
	ActionClearFilter Action = "clear_filter"
	ActionFollow      Action = "follow"
	ActionRedraw      Action = "redraw"
)

// Actions lists every action in lookup order
var Actions = []Action{
	ActionQuit, ActionDown, ActionUp, ActionPageDown, ActionPageUp,
	ActionHalfDown, ActionHalfUp, ActionTop, ActionBottom, ActionLeft,
	ActionRight, ActionFilter, ActionClearFilter, ActionFollow, ActionRedraw,
}

// DefaultBindings are the less-like bindings used when config has none
var DefaultBindings = map[Action][]string{
	ActionQuit:        {"q", "ctrl_c"},
	ActionDown:        {"j", "down", "enter", "ctrl_n", "ctrl_e"},
	ActionUp:          {"k", "up", "ctrl_p", "ctrl_y"},
	ActionPageDown:    {"space", "page_down", "f", "ctrl_f"},
	ActionPageUp:      {"b", "page_up", "ctrl_b"},
	ActionHalfDown:    {"d", "ctrl_d"},
	ActionHalfUp:      {"u", "ctrl_u"},
	ActionTop:         {"g", "home", "<"},
	ActionBottom:      {"G", "end", ">"},
	ActionLeft:        {"h", "left"},
	ActionRight:       {"l", "right"},
	ActionFilter:      {"/", "&"},
	ActionClearFilter: {"backslash"},
	ActionFollow:      {"F"},
	ActionRedraw:      {"ctrl_l", "r"},
}

type binding struct {
	action Action
	event  terminal.Event
}

// KeyMap resolves input events to actions
type KeyMap struct {
	bindings []binding
	byAction map[Action][]string
}

// NewKeyMap builds the default map with overrides applied. An override
// replaces every default key of its action
func NewKeyMap(overrides map[string][]string) (*KeyMap, error) {
	names := make(map[Action][]string, len(DefaultBindings))
	for a, keys := range DefaultBindings {
		names[a] = keys
	}
	for name, keys := range overrides {
		a := Action(strings.ToLower(name))
		if _, ok := DefaultBindings[a]; !ok {
			return nil, fmt.Errorf("keys.%s: unknown action", name)
		}
		names[a] = keys
	}

	km := &KeyMap{byAction: names}
	for _, a := range Actions {
		for _, k := range names[a] {
			ev, err := terminal.ParseBinding(k)
			if err != nil {
				return nil, fmt.Errorf("keys.%s: %w", a, err)
			}
			km.bindings = append(km.bindings, binding{action: a, event: ev})
		}
	}
	return km, nil
}

// Lookup returns the action bound to ev. Earlier actions in Actions win
// when a key is bound twice
func (k *KeyMap) Lookup(ev terminal.Event) (Action, bool) {
	for _, b := range k.bindings {
		if terminal.MatchesBinding(ev, b.event) {
			return b.action, true
		}
	}
	return "", false
}

// Keys returns the key names bound to a
func (k *KeyMap) Keys(a Action) []string {
	return k.byAction[a]
}
