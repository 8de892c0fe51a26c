package core

// Color is a foreground color for a screen cell. The TUI maps each value to
// an ANSI 256-color code.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Board roles. Positive poles are blue and negative poles red throughout.
const (
	ColorPositive = ColorBrightBlue
	ColorNegative = ColorBrightRed
	ColorPlayer   = ColorBrightYellow
	ColorTrail    = ColorCyan
	ColorGoal     = ColorBrightGreen
	ColorStart    = ColorGreen
	ColorWall     = ColorGray
	ColorGrid     = ColorGray
	ColorCursor   = ColorBrightWhite
	ColorStar     = ColorYellow
	ColorCoin     = ColorOrange
	ColorGem      = ColorMagenta
	ColorKey      = ColorWhite
)
