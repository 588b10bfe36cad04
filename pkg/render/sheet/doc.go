// Package sheet assembles a contact sheet: a metadata text block above a grid
// of composited frame cells.
//
// The canvas height depends on the measured height of the metadata block,
// which depends on the font size, which depends on the cell width. Assemble
// resolves this by measuring the text with the final layout's body font and
// then fixing the grid start with geometry.Layout.WithMetadataHeight.
//
// Cells are placed in row-major order: cell i goes to row i/cols, column
// i%cols.
package sheet
