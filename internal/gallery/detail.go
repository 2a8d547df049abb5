package gallery

// Tab is a section of the script detail page.
type Tab string

const (
	TabOverview    Tab = "overview"
	TabScreenshots Tab = "screenshots"
	TabFeatures    Tab = "features"
	TabChangelog   Tab = "changelog"
)

var Tabs = []Tab{TabOverview, TabScreenshots, TabFeatures, TabChangelog}

// ParseTab falls back to the overview for unknown values.
func ParseTab(value string) Tab {
	for _, tab := range Tabs {
		if string(tab) == value {
			return tab
		}
	}
	return TabOverview
}

// NextIndex advances the screenshot carousel, wrapping to the first image.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (Clamp(i, n) + 1) % n
}

// PrevIndex steps the carousel back, wrapping to the last image.
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i = Clamp(i, n)
	if i == 0 {
		return n - 1
	}
	return i - 1
}

// Clamp brings a requested screenshot index into [0, n).
func Clamp(i, n int) int {
	switch {
	case n <= 0 || i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}
