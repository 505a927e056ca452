package hid

import (
	"errors"
	"fmt"
	"strings"
)

// Mapping remaps one key to another.
type Mapping struct {
	Src Key
	Dst Key
}

// Swapped returns the mapping with source and destination exchanged.
func (m Mapping) Swapped() Mapping {
	return Mapping{Src: m.Dst, Dst: m.Src}
}

// side is one half of a mapping spec: either a single key or a bilateral
// modifier name standing for its left and right physical keys.
type side struct {
	double bool
	left   Key // the single key when double is false
	right  Key
}

func parseSide(s string) (side, error) {
	switch s {
	case "control":
		return side{double: true, left: LeftControl, right: RightControl}, nil
	case "shift":
		return side{double: true, left: LeftShift, right: RightShift}, nil
	case "option":
		return side{double: true, left: LeftOption, right: RightOption}, nil
	case "command":
		return side{double: true, left: LeftCommand, right: RightCommand}, nil
	}
	k, err := ParseKey(s)
	if err != nil {
		return side{}, err
	}
	return side{left: k}, nil
}

// ParseMappings parses a "source:destination" token into concrete mappings.
// The split point is the first colon, so a bare colon may still appear as the
// destination key. A bilateral name ("control", "shift", "option",
// "command") expands to its left and right physical keys: paired positionally
// against another bilateral name, or fanned out against a single key.
func ParseMappings(s string) ([]Mapping, error) {
	if s == "" {
		return nil, errors.New("empty mapping")
	}
	src, dst, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("expected `source:destination`, got `%s`", s)
	}
	if src == "" || dst == "" {
		return nil, fmt.Errorf("expected `source:destination`, got `%s`", s)
	}
	from, err := parseSide(src)
	if err != nil {
		return nil, err
	}
	to, err := parseSide(dst)
	if err != nil {
		return nil, err
	}
	switch {
	case from.double && to.double:
		return []Mapping{
			{Src: from.left, Dst: to.left},
			{Src: from.right, Dst: to.right},
		}, nil
	case from.double:
		return []Mapping{
			{Src: from.left, Dst: to.left},
			{Src: from.right, Dst: to.left},
		}, nil
	case to.double:
		return []Mapping{
			{Src: from.left, Dst: to.left},
			{Src: from.left, Dst: to.right},
		}, nil
	default:
		return []Mapping{{Src: from.left, Dst: to.left}}, nil
	}
}
