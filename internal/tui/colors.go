package tui

// Color constants for the prosed kiosk theme (dark blue)
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#1A237E" // Deep dark blue
	ColorBorder         = "#455A64" // Subtle borders

	// Text Colors
	ColorPrimaryText   = "#FFFFFF" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#B0BEC5" // Secondary text - light grey
	ColorDisabledText  = "#757575" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Blue theme)
	ColorAccentMain   = "#2196F3" // Accent elements, active borders
	ColorAccentBright = "#64B5F6" // Hover, highlights, current step

	// State Colors
	ColorError   = "#F44336" // Failed, overtime
	ColorSuccess = "#4CAF50" // Passed, on-time
	ColorWarning = "#FF9800" // Approaching the time limit
	ColorInfo    = "#2196F3" // Informational
)
