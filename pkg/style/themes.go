package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminals
var (
	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#1E7E34", // Green
		Dark:  "#5BD97C",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#C82333", // Red
		Dark:  "#FF7083",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#D39E00", // Amber
		Dark:  "#FFD75F",
	}

	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#1B1F23", // Almost black
		Dark:  "#F5F7FA", // Almost white
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6A737D", // Medium gray
		Dark:  "#A8B2BC",
	}

	BorderColor = lipgloss.AdaptiveColor{
		Light: "#D1D5DA",
		Dark:  "#3A3F47",
	}
)
