// Package render turns a composed manifest into printable artifacts.
//
// Three formats are provided: a plain-text DA Form 1306 rendition, a CSV
// spreadsheet, and a paginated HTML document. Every renderer consumes the
// sections exactly as the composer produced them; grouping, ordering and line
// markers are never re-derived here.
package render
