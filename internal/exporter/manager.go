package exporter

import (
	"fmt"
	"strings"
)

// Options configures the exporters built by GetExporters
type Options struct {
	Delimiter rune   // CSV field delimiter
	Encoding  string // CSV text encoding label
	FileName  string // workbook name (without extension) for the xlsx format
}

// GetExporters returns a list of Exporters based on requested formats
func GetExporters(formats []string, opts Options) ([]Exporter, error) {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if fmtStr == "" || seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "csv":
			e, err := NewCSVExporterWith(opts.Delimiter, opts.Encoding)
			if err != nil {
				return nil, err
			}
			exporters = append(exporters, e)
		case "excel", "xlsx":
			exporters = append(exporters, NewExcelExporter(opts.FileName))
		default:
			return nil, fmt.Errorf("unsupported output format %q", fmtStr)
		}
	}

	if len(exporters) == 0 {
		return nil, fmt.Errorf("no output format selected")
	}
	return exporters, nil
}
