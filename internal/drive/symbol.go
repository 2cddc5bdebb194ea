package drive

import (
	"fmt"
	"strings"
)

// Symbol is one discrete drive command.
type Symbol uint8

const (
	Stop Symbol = iota + 1
	TurnLeft
	TurnRight
	MoveForward
	MoveBack
)

var symbolNames = map[Symbol]string{
	Stop:        "stop",
	TurnLeft:    "left",
	TurnRight:   "right",
	MoveForward: "forward",
	MoveBack:    "back",
}

// Digits follow the arrows printed on a numeric keypad.
var symbolAliases = map[string]Symbol{
	"stop": Stop,
	"halt": Stop,
	"5":    Stop,

	"left":     TurnLeft,
	"turnleft": TurnLeft,
	"l":        TurnLeft,
	"4":        TurnLeft,

	"right":     TurnRight,
	"turnright": TurnRight,
	"r":         TurnRight,
	"6":         TurnRight,

	"forward": MoveForward,
	"fwd":     MoveForward,
	"f":       MoveForward,
	"8":       MoveForward,

	"back":    MoveBack,
	"reverse": MoveBack,
	"b":       MoveBack,
	"2":       MoveBack,
}

// Symbols returns every valid symbol in declaration order.
func Symbols() []Symbol {
	return []Symbol{Stop, TurnLeft, TurnRight, MoveForward, MoveBack}
}

func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return fmt.Sprintf("symbol(%d)", uint8(s))
}

// Valid reports whether s is one of the five drive commands.
func (s Symbol) Valid() bool {
	_, ok := symbolNames[s]
	return ok
}

// ParseSymbol accepts a command name, an alias or a keypad digit.
func ParseSymbol(name string) (Symbol, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	if s, ok := symbolAliases[key]; ok {
		return s, nil
	}
	return 0, &InputError{Token: name}
}
