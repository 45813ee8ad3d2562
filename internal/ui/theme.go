package ui

import (
	"fmt"
	"strings"

	"github.com/brk3/streaks/internal/config"
	"github.com/charmbracelet/lipgloss"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

type Palette string

const (
	PaletteClassic Palette = "classic"
	PaletteOcean   Palette = "ocean"
	PaletteForest  Palette = "forest"
	PaletteSunset  Palette = "sunset"
	PaletteMono    Palette = "mono"
)

// heat ramps, shade 1..4, in ANSI 256 colours
var ramps = map[Palette][4]string{
	PaletteClassic: {"22", "28", "34", "40"},
	PaletteOcean:   {"24", "31", "38", "45"},
	PaletteForest:  {"58", "64", "70", "76"},
	PaletteSunset:  {"130", "166", "202", "208"},
	PaletteMono:    {"240", "245", "250", "255"},
}

// Theme is passed explicitly to every renderer. There is no package-level
// theme state.
type Theme struct {
	Mode    Mode
	Accent  lipgloss.Color
	Palette Palette
}

func DefaultTheme() Theme {
	return Theme{Mode: ModeDark, Accent: lipgloss.Color("205"), Palette: PaletteClassic}
}

func ThemeFrom(c config.ThemeConfig) (Theme, error) {
	t := DefaultTheme()
	if c.Mode != "" {
		t.Mode = Mode(strings.ToLower(c.Mode))
	}
	if c.Accent != "" {
		t.Accent = lipgloss.Color(c.Accent)
	}
	if c.Palette != "" {
		t.Palette = Palette(strings.ToLower(c.Palette))
	}
	if t.Mode != ModeLight && t.Mode != ModeDark {
		return Theme{}, fmt.Errorf("theme.mode: unknown mode %q", c.Mode)
	}
	if _, ok := ramps[t.Palette]; !ok {
		return Theme{}, fmt.Errorf("theme.palette: unknown palette %q", c.Palette)
	}
	return t, nil
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Muted       lipgloss.Style
	Good        lipgloss.Style
	Bad         lipgloss.Style
	Empty       lipgloss.Style
	Frozen      lipgloss.Style
	Today       lipgloss.Style
	Focus       lipgloss.Style
	Hover       lipgloss.Style
	Celebrate   lipgloss.Style
	Panel       lipgloss.Style
	Shades      [4]lipgloss.Style
	RunUnderlay lipgloss.Style
}

func (t Theme) Styles() Styles {
	muted := lipgloss.Color("244")
	text := lipgloss.Color("252")
	if t.Mode == ModeLight {
		muted = lipgloss.Color("246")
		text = lipgloss.Color("235")
	}

	s := Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Label:       lipgloss.NewStyle().Bold(true).Foreground(text),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Good:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Bad:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Empty:       lipgloss.NewStyle().Foreground(muted),
		Frozen:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
		Today:       lipgloss.NewStyle().Underline(true),
		Focus:       lipgloss.NewStyle().Reverse(true),
		Hover:       lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Celebrate:   lipgloss.NewStyle().Bold(true).Blink(true).Foreground(lipgloss.Color("220")),
		Panel:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(t.Accent).Padding(0, 1),
		RunUnderlay: lipgloss.NewStyle().Bold(true),
	}
	for i, c := range ramps[t.Palette] {
		s.Shades[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return s
}
