// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Amber = lipgloss.Color("#D97706")
	Slate = lipgloss.Color("#667085")
	Red   = lipgloss.Color("#D93025")
	Gold  = lipgloss.Color("#F59E0B")
	Sky   = lipgloss.Color("#0EA5E9")
)

// Icons.
const (
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

