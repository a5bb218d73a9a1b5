// Package viz renders estimation results in the terminal.
//
// Three surfaces:
//
//   - [Profile]: asciigraph line plots of per-parameter variance and
//     lambda profiles
//   - lipgloss styles for run summaries and the shrinkage scale
//   - [RunBrowse]: an interactive Bubble Tea browser over the per-parameter
//     decomposition of a saved run
//
// # Key Bindings (browser)
//
//	Up/Down, j/k - move between parameters
//	PgUp/PgDn    - page
//	g/G          - jump to first/last parameter
//	q, Esc       - quit
package viz
