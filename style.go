package vflow

// Style holds the colors views paint with. Sizes live in options
// (CellMetrics), since they feed measurement.
type Style struct {
	TextColor       uint32
	BackgroundColor uint32
	BorderColor     uint32
	RowBgAltColor   uint32 // alternate row background (0 = none)

	HeaderBgColor   uint32
	HeaderTextColor uint32 // 0 = use TextColor

	DisclosureColor uint32 // tree expand/collapse arrows

	ScrollbarBgColor   uint32
	ScrollbarGrabColor uint32
	ScrollbarSize      float32
}

// DefaultStyle returns the default style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		TextColor:       ColorWhite,
		BackgroundColor: RGBA(30, 30, 30, 255),
		BorderColor:     RGBA(80, 80, 80, 255),
		RowBgAltColor:   RGBA(35, 35, 35, 255),

		HeaderBgColor:   RGBA(40, 40, 40, 255),
		HeaderTextColor: 0, // Use TextColor

		DisclosureColor: RGBA(180, 180, 180, 255),

		ScrollbarBgColor:   RGBA(30, 30, 30, 255),
		ScrollbarGrabColor: RGBA(80, 80, 80, 255),
		ScrollbarSize:      12,
	}
}

// DarkStyle returns a darker theme with blue headers.
func DarkStyle() Style {
	s := DefaultStyle()
	s.BackgroundColor = RGBA(25, 25, 25, 240)
	s.HeaderBgColor = RGBA(35, 35, 40, 255)
	s.ScrollbarGrabColor = RGBA(65, 105, 225, 255) // Royal blue
	return s
}

// LightStyle returns a light theme.
func LightStyle() Style {
	return Style{
		TextColor:       RGBA(20, 20, 20, 255),
		BackgroundColor: ColorWhite,
		BorderColor:     RGBA(200, 200, 200, 255),
		RowBgAltColor:   RGBA(245, 245, 245, 255),

		HeaderBgColor:   RGBA(230, 230, 230, 255),
		HeaderTextColor: RGBA(20, 20, 20, 255),

		DisclosureColor: RGBA(80, 80, 80, 255),

		ScrollbarBgColor:   RGBA(240, 240, 240, 255),
		ScrollbarGrabColor: RGBA(180, 180, 180, 255),
		ScrollbarSize:      12,
	}
}

func (s Style) headerText() uint32 {
	if s.HeaderTextColor != 0 {
		return s.HeaderTextColor
	}
	return s.TextColor
}
