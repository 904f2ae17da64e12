package theme

import (
	"image/color"
)

// Theme defines the colours of the editor chrome. Annotation colours are
// chosen per shape and are not part of the theme.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area around the image
	Foreground color.RGBA // Label text

	// Toolbar panel
	PanelBackground color.RGBA
	PanelBorder     color.RGBA
	FieldBackground color.RGBA
	FieldFocus      color.RGBA

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextDisabled    color.RGBA
	ButtonBorder          color.RGBA

	// Canvas chrome
	HandleFill   color.RGBA
	HandleStroke color.RGBA
	HoverOutline color.RGBA
	CropShade    color.RGBA // premultiplied
	CropBorder   color.RGBA

	// Error box
	ErrorBackground color.RGBA
	ErrorText       color.RGBA

	// Swatches of translucent colours
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{0x1b, 0x1b, 0x1b, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		PanelBackground:       color.RGBA{235, 235, 235, 255},
		PanelBorder:           color.RGBA{120, 120, 120, 255},
		FieldBackground:       color.RGBA{255, 255, 255, 255},
		FieldFocus:            color.RGBA{30, 110, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled:    color.RGBA{130, 130, 130, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		HandleFill:            color.RGBA{0xee, 0xee, 0xee, 255},
		HandleStroke:          color.RGBA{0x0e, 0x0e, 0x0e, 255},
		HoverOutline:          color.RGBA{0x80, 0x80, 0x80, 255},
		CropShade:             color.RGBA{0x1b, 0x1b, 0x1b, 0x90},
		CropBorder:            color.RGBA{0xee, 0xee, 0xee, 255},
		ErrorBackground:       color.RGBA{255, 255, 255, 255},
		ErrorText:             color.RGBA{200, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	t := Default()
	t.Name = "Dark"
	t.Foreground = color.RGBA{230, 230, 230, 255}
	t.PanelBackground = color.RGBA{45, 45, 48, 255}
	t.PanelBorder = color.RGBA{90, 90, 90, 255}
	t.FieldBackground = color.RGBA{30, 30, 30, 255}
	t.ButtonBackground = color.RGBA{70, 70, 74, 255}
	t.ButtonBackgroundHover = color.RGBA{90, 90, 94, 255}
	t.ButtonBackgroundPress = color.RGBA{110, 110, 116, 255}
	t.ButtonText = color.RGBA{230, 230, 230, 255}
	t.ButtonTextDisabled = color.RGBA{120, 120, 120, 255}
	t.ButtonBorder = color.RGBA{20, 20, 20, 255}
	t.ErrorBackground = color.RGBA{45, 45, 48, 255}
	t.ErrorText = color.RGBA{255, 110, 110, 255}
	t.CheckerLight = color.RGBA{90, 90, 90, 255}
	t.CheckerDark = color.RGBA{60, 60, 60, 255}
	return t
}

// Builtin returns the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	switch name {
	case "default", "Default", "light":
		return Default(), true
	case "dark", "Dark":
		return Dark(), true
	}
	return nil, false
}
