// Package keypad maps key presses to drive commands.
//
// The default layout follows the arrows printed on a numeric keypad
// (8 forward, 2 back, 4 left, 6 right, 5 stop), with the cursor keys and
// WASD as alternatives. Key names are the strings bubbletea reports for a
// key message.
package keypad

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/san-kum/skidsteer/internal/drive"
)

// Map binds key names to commands.
type Map map[string]drive.Symbol

// Unbind is the keymap value that removes a default binding. "noop" is
// accepted as well; such keys do nothing.
const Unbind = "none"

func Default() Map {
	return Map{
		"8":     drive.MoveForward,
		"up":    drive.MoveForward,
		"w":     drive.MoveForward,
		"2":     drive.MoveBack,
		"down":  drive.MoveBack,
		"s":     drive.MoveBack,
		"4":     drive.TurnLeft,
		"left":  drive.TurnLeft,
		"a":     drive.TurnLeft,
		"6":     drive.TurnRight,
		"right": drive.TurnRight,
		"d":     drive.TurnRight,
		"5":     drive.Stop,
		" ":     drive.Stop,
		"x":     drive.Stop,
	}
}

// FromConfig overlays custom bindings (key -> command name) on the default
// layout. Every unknown command name is reported.
func FromConfig(bindings map[string]string) (Map, error) {
	m := Default()
	var err error
	for key, name := range bindings {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case Unbind, "noop":
			delete(m, key)
			continue
		}
		sym, perr := drive.ParseSymbol(name)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("keymap %q: %w", key, perr))
			continue
		}
		m[key] = sym
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Lookup returns the command bound to key.
func (m Map) Lookup(key string) (drive.Symbol, bool) {
	sym, ok := m[key]
	return sym, ok
}

// Keys returns the keys bound to sym, sorted.
func (m Map) Keys(sym drive.Symbol) []string {
	var keys []string
	for k, s := range m {
		if s == sym {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Help renders one "keys: command" line per command.
func (m Map) Help() string {
	var b strings.Builder
	for _, sym := range drive.Symbols() {
		keys := m.Keys(sym)
		for i, k := range keys {
			if k == " " {
				keys[i] = "space"
			}
		}
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-8s %s\n", sym, strings.Join(keys, " "))
	}
	return b.String()
}
