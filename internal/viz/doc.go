// Package viz renders drive sessions in the terminal.
//
// Styles and themes are built on lipgloss; [PlotSpeeds] draws the left
// and right track series of a trace with asciigraph.
package viz
