// Package textutil holds small string helpers shared by the renderers, the
// exporter and the publisher: artifact file name sanitization and the yes/no
// flags the spreadsheet backend expects.
package textutil
