package ui

import "image/color"

type Theme struct {
	StatusBar      color.RGBA
	Border         color.RGBA
	Text           color.RGBA
	Crosshair      color.RGBA
	StatusHeightDp int
	CrosshairDp    int
	TextInsetDp    int
}

func DefaultTheme() Theme {
	return Theme{
		StatusBar:      color.RGBA{0x14, 0x18, 0x20, 0xFF},
		Border:         color.RGBA{0x3A, 0x44, 0x55, 0xFF},
		Text:           color.RGBA{0xE6, 0xEA, 0xF0, 0xFF},
		Crosshair:      color.RGBA{0xE0, 0x4F, 0x3A, 0xFF},
		StatusHeightDp: 24,
		CrosshairDp:    6,
		TextInsetDp:    8,
	}
}
