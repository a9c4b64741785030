package tui

// Color constants for the glance TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#10192E" // Dark navy
	ColorBorder         = "#32405C" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (card titles, values)
	ColorSecondaryText = "#AEB9CC" // Secondary text - cool grey
	ColorDisabledText  = "#697287" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Blue theme)
	ColorAccentMain   = "#2563EB" // Accent elements, active borders
	ColorAccentBright = "#7DA8FA" // Highlights, active category

	// State Colors
	ColorError   = "#EF4444" // Failed sources, validation errors
	ColorSuccess = "#22C55E" // Completed goals, healthy status
	ColorWarning = "#F59E0B" // Warnings, lapsed streaks
)
