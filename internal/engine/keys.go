package engine

import "strings"

// Key is a decoded key press. Named keys use lowercase names, printable keys
// are the character itself.
type Key string

const (
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyLeft  Key = "left"
	KeyRight Key = "right"
	KeyEnter Key = "enter"
	KeyEsc   Key = "esc"
	KeyTab   Key = "tab"
	KeySpace Key = " "
)

// KeyFromCode maps the integer key codes found in authored models.
func KeyFromCode(code int) Key {
	switch code {
	case 27:
		return KeyEsc
	case 10, 13:
		return KeyEnter
	case 9:
		return KeyTab
	case 32:
		return KeySpace
	}
	return Key(string(rune(code)))
}

// KeyFromName normalises key names such as "ESC", "escape" or "return".
// Single characters are kept as they are.
func KeyFromName(name string) Key {
	if len([]rune(name)) == 1 {
		return Key(name)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "esc", "escape":
		return KeyEsc
	case "enter", "return":
		return KeyEnter
	case "space":
		return KeySpace
	case "tab":
		return KeyTab
	case "up":
		return KeyUp
	case "down":
		return KeyDown
	case "left":
		return KeyLeft
	case "right":
		return KeyRight
	}
	return Key(strings.ToLower(name))
}
