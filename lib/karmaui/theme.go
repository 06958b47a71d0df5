// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the viewer's color palette. All colors are lipgloss
// ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Net score coloring: positive scores, negative scores. Zero
	// renders in NormalText.
	PositiveScore lipgloss.Color
	NegativeScore lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Filter match highlighting: background tint for the characters
	// of a name that matched the fuzzy filter query.
	MatchBackground lipgloss.Color
}

// ScoreColor returns the color for a net score value.
func (theme Theme) ScoreColor(net int) lipgloss.Color {
	switch {
	case net > 0:
		return theme.PositiveScore
	case net < 0:
		return theme.NegativeScore
	default:
		return theme.NormalText
	}
}

// DarkTheme is the palette for dark terminal backgrounds (the common
// case for development environments and tmux sessions).
var DarkTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PositiveScore: lipgloss.Color("114"), // green
	NegativeScore: lipgloss.Color("203"), // soft red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	MatchBackground: lipgloss.Color("58"), // dark amber
}

// LightTheme is the palette for light terminal backgrounds.
var LightTheme = Theme{
	NormalText: lipgloss.Color("235"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("254"),
	SelectedForeground: lipgloss.Color("232"),

	PositiveScore: lipgloss.Color("28"),  // dark green
	NegativeScore: lipgloss.Color("160"), // dark red

	HeaderForeground: lipgloss.Color("232"),
	BorderColor:      lipgloss.Color("250"),
	HelpText:         lipgloss.Color("247"),

	MatchBackground: lipgloss.Color("222"), // pale amber
}

// DetectTheme probes the terminal background and returns DarkTheme or
// LightTheme accordingly. Call before the bubbletea program starts:
// the probe writes an OSC query to the terminal, which would corrupt
// the alt-screen display once the program is running.
func DetectTheme() Theme {
	if termenv.NewOutput(os.Stdout).HasDarkBackground() {
		return DarkTheme
	}
	return LightTheme
}
