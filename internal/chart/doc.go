// Package chart feeds the per-day discrepancy series to a charting widget.
//
// [Adapter] converts samples into label/value columns and republishes them
// wholesale; [Charter] is the widget capability it drives. [ASCIIChart] is
// a terminal Charter built on asciigraph.
package chart
