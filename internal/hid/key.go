package hid

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// KeyKind discriminates the variants of a Key.
type KeyKind uint8

const (
	KindReturn KeyKind = iota
	KindEscape
	KindDelete
	KindCapsLock
	KindLeftControl
	KindLeftShift
	KindLeftOption
	KindLeftCommand
	KindRightControl
	KindRightShift
	KindRightOption
	KindRightCommand
	KindFn
	KindChar
	KindFunction
	KindRaw
)

// Key is one logical key on a keyboard. The named variants cover the fixed
// keys hidutil users most commonly remap; KindChar wraps the printed
// character of a key, KindFunction wraps F1..F24, and KindRaw carries an
// arbitrary usage id for anything not enumerated here (see the USB HID Usage
// Tables, Keyboard/Keypad page).
type Key struct {
	Kind KeyKind
	Char rune   // set when Kind == KindChar
	Num  uint8  // 1..24, set when Kind == KindFunction
	Code uint64 // set when Kind == KindRaw
}

var (
	Return       = Key{Kind: KindReturn}
	Escape       = Key{Kind: KindEscape}
	Delete       = Key{Kind: KindDelete}
	CapsLock     = Key{Kind: KindCapsLock}
	LeftControl  = Key{Kind: KindLeftControl}
	LeftShift    = Key{Kind: KindLeftShift}
	LeftOption   = Key{Kind: KindLeftOption}
	LeftCommand  = Key{Kind: KindLeftCommand}
	RightControl = Key{Kind: KindRightControl}
	RightShift   = Key{Kind: KindRightShift}
	RightOption  = Key{Kind: KindRightOption}
	RightCommand = Key{Kind: KindRightCommand}
	Fn           = Key{Kind: KindFn}
)

// Char returns the key producing the given character.
func Char(r rune) Key { return Key{Kind: KindChar, Char: r} }

// F returns the function key F(n), n in 1..24.
func F(n uint8) Key { return Key{Kind: KindFunction, Num: n} }

// Raw returns a key identified directly by its usage id.
func Raw(code uint64) Key { return Key{Kind: KindRaw, Code: code} }

// ParseKey parses a user-supplied key name. Named keys (and their aliases)
// are matched first, then a single character, then an F-key number, and
// finally a raw numeric usage id.
func ParseKey(s string) (Key, error) {
	lower := strings.ToLower(s)
	switch lower {
	case "⏎", "return":
		return Return, nil
	case "esc", "escape":
		return Escape, nil
	case "⌫", "del", "delete":
		return Delete, nil
	case "⇪", "capslock":
		return CapsLock, nil
	case "lcontrol":
		return LeftControl, nil
	case "rcontrol":
		return RightControl, nil
	case "lshift":
		return LeftShift, nil
	case "rshift":
		return RightShift, nil
	case "loption":
		return LeftOption, nil
	case "roption":
		return RightOption, nil
	case "lcommand":
		return LeftCommand, nil
	case "rcommand":
		return RightCommand, nil
	case "fn":
		return Fn, nil
	}
	if utf8.RuneCountInString(lower) == 1 {
		// keep the original case; letters fold during encoding anyway
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	}
	if rest, ok := strings.CutPrefix(lower, "f"); ok {
		if n, err := strconv.ParseUint(rest, 10, 8); err == nil {
			if n < 1 || n > 24 {
				return Key{}, fmt.Errorf("invalid function key number: %d", n)
			}
			return F(uint8(n)), nil
		}
	}
	code, err := ParseNumber(lower)
	if err != nil {
		return Key{}, err
	}
	return Raw(code), nil
}

// UsagePageID returns the usage page for this key, pre-shifted into the high
// bits the way hidutil expects. Fn lives on Apple's vendor keyboard page.
func (k Key) UsagePageID() uint64 {
	if k.Kind == KindFn {
		return 0xff_0000_0000
	}
	return 0x7_0000_0000
}

// UsageID returns the usage id for this key, or false when the key has no
// defined usage (for example a character outside the US ANSI layout).
//
// See https://developer.apple.com/library/archive/technotes/tn2450/_index.html
func (k Key) UsageID() (uint64, bool) {
	switch k.Kind {
	case KindReturn:
		return 0x28, true
	case KindEscape:
		return 0x29, true
	case KindDelete:
		return 0x2a, true
	case KindCapsLock:
		return 0x39, true
	case KindLeftControl:
		return 0xe0, true
	case KindLeftShift:
		return 0xe1, true
	case KindLeftOption:
		return 0xe2, true
	case KindLeftCommand:
		return 0xe3, true
	case KindRightControl:
		return 0xe4, true
	case KindRightShift:
		return 0xe5, true
	case KindRightOption:
		return 0xe6, true
	case KindRightCommand:
		return 0xe7, true
	case KindFn:
		return 0x03, true
	case KindChar:
		id, ok := charUsageIDs[k.Char]
		return id, ok
	case KindFunction:
		id, ok := fnUsageIDs[k.Num]
		return id, ok
	case KindRaw:
		return k.Code, true
	}
	return 0, false
}

// Encoded returns the composite value hidutil takes in its mapping property:
// the usage page plus the usage id. Raw keys are treated as bare usage ids on
// the keyboard page, so Raw(v) encodes to 0x7_0000_0000 + v.
func (k Key) Encoded() (uint64, error) {
	id, ok := k.UsageID()
	if !ok {
		return 0, fmt.Errorf("failed to encode key `%s`, consider using a raw usage id (e.g. 0x64)", k)
	}
	return k.UsagePageID() + id, nil
}

func (k Key) String() string {
	switch k.Kind {
	case KindReturn:
		return "return"
	case KindEscape:
		return "escape"
	case KindDelete:
		return "delete"
	case KindCapsLock:
		return "capslock"
	case KindLeftControl:
		return "lcontrol"
	case KindLeftShift:
		return "lshift"
	case KindLeftOption:
		return "loption"
	case KindLeftCommand:
		return "lcommand"
	case KindRightControl:
		return "rcontrol"
	case KindRightShift:
		return "rshift"
	case KindRightOption:
		return "roption"
	case KindRightCommand:
		return "rcommand"
	case KindFn:
		return "fn"
	case KindChar:
		return string(k.Char)
	case KindFunction:
		return fmt.Sprintf("f%d", k.Num)
	case KindRaw:
		return fmt.Sprintf("0x%x", k.Code)
	}
	return "unknown"
}

// charUsageIDs maps printed characters of the US ANSI layout to keyboard
// usage ids. Shifted partners share the physical key and therefore the code.
var charUsageIDs = map[rune]uint64{
	'a': 0x04, 'A': 0x04,
	'b': 0x05, 'B': 0x05,
	'c': 0x06, 'C': 0x06,
	'd': 0x07, 'D': 0x07,
	'e': 0x08, 'E': 0x08,
	'f': 0x09, 'F': 0x09,
	'g': 0x0a, 'G': 0x0a,
	'h': 0x0b, 'H': 0x0b,
	'i': 0x0c, 'I': 0x0c,
	'j': 0x0d, 'J': 0x0d,
	'k': 0x0e, 'K': 0x0e,
	'l': 0x0f, 'L': 0x0f,
	'm': 0x10, 'M': 0x10,
	'n': 0x11, 'N': 0x11,
	'o': 0x12, 'O': 0x12,
	'p': 0x13, 'P': 0x13,
	'q': 0x14, 'Q': 0x14,
	'r': 0x15, 'R': 0x15,
	's': 0x16, 'S': 0x16,
	't': 0x17, 'T': 0x17,
	'u': 0x18, 'U': 0x18,
	'v': 0x19, 'V': 0x19,
	'w': 0x1a, 'W': 0x1a,
	'x': 0x1b, 'X': 0x1b,
	'y': 0x1c, 'Y': 0x1c,
	'z': 0x1d, 'Z': 0x1d,

	'1': 0x1e, '!': 0x1e,
	'2': 0x1f, '@': 0x1f,
	'3': 0x20, '#': 0x20,
	'4': 0x21, '$': 0x21,
	'5': 0x22, '%': 0x22,
	'6': 0x23, '^': 0x23,
	'7': 0x24, '&': 0x24,
	'8': 0x25, '*': 0x25,
	'9': 0x26, '(': 0x26,
	'0': 0x27, ')': 0x27,

	'\t': 0x2b,
	' ':  0x2c,
	'-':  0x2d, '_': 0x2d,
	'=': 0x2e, '+': 0x2e,
	'[': 0x2f, '{': 0x2f,
	']': 0x30, '}': 0x30,
	'\\': 0x31, '|': 0x31,
	';': 0x33, ':': 0x33,
	'\'': 0x34, '"': 0x34,
	'`': 0x35, '~': 0x35,
	',': 0x36, '<': 0x36,
	'.': 0x37, '>': 0x37,
	'/': 0x38, '?': 0x38,
}

// fnUsageIDs maps F-key numbers to usage ids. F1-F12 and F13-F24 occupy two
// separate contiguous runs in the usage table.
var fnUsageIDs = map[uint8]uint64{
	1: 0x3a, 2: 0x3b, 3: 0x3c, 4: 0x3d, 5: 0x3e, 6: 0x3f,
	7: 0x40, 8: 0x41, 9: 0x42, 10: 0x43, 11: 0x44, 12: 0x45,
	13: 0x68, 14: 0x69, 15: 0x6a, 16: 0x6b, 17: 0x6c, 18: 0x6d,
	19: 0x6e, 20: 0x6f, 21: 0x70, 22: 0x71, 23: 0x72, 24: 0x73,
}
