package core

// Color is the foreground of a screen cell. The platform layer picks the
// terminal color for each value.
type Color uint8

// Table palette. ColorDefault leaves the terminal foreground untouched.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorWhite
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
	ColorBrown
)
