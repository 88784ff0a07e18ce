package generate

import (
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Table builds a read-only table of rows. Columns are the table's column
// descriptors and are only consulted for boolean detection; labels decide
// which columns are shown and in which order. Every data row starts with an
// anchor (row_<id>) so callers can link to it.
func Table(rows []Row, columns []string, labels schema.Labels, options ...Option) markup.Node {
	cfg := newConfig(options)
	formats := schema.DetectFormats(columns)

	header := make([]markup.Node, 0, len(labels))
	for _, label := range labels {
		header = append(header, markup.El("th", markup.InnerText(label.Text)))
	}

	tableRows := make([]markup.Node, 0, len(rows)+1)
	tableRows = append(tableRows, markup.El("tr", markup.Children(header...)))

	for _, row := range rows {
		cells := make([]markup.Node, 0, len(labels)+1)
		cells = append(cells, markup.El("a", markup.ID("row_"+markup.Stringify(row[cfg.anchorKey]))))
		for _, label := range labels {
			cells = append(cells, cfg.cell(row, label.Key, formats[label.Key]))
		}
		tableRows = append(tableRows, markup.El("tr", markup.Children(cells...)))
	}

	return markup.El("div", markup.Class(cfg.classes.TableContainer), markup.Children(
		markup.El("table", markup.Class(cfg.classes.Table), markup.Children(tableRows...)),
	))
}

func (cfg config) cell(row Row, key string, format schema.Format) markup.Node {
	value := row[key]

	var display string
	switch {
	case cfg.blankNulls && value == nil:
		display = ""
	case format == schema.FormatBoolean:
		display = booleanCell(value)
	default:
		display = markup.Stringify(value)
	}

	if cfg.postprocessor != nil {
		return markup.El("td", markup.Class(cfg.classes.Cell), markup.Children(cfg.postprocessor(row, key, display)...))
	}
	return markup.El("td", markup.Class(cfg.classes.Cell), markup.InnerText(display))
}
