package exporter

import (
	"io"

	"fuel-sheets/internal/extractor"
	"fuel-sheets/internal/model"
)

// Exporter persists extracted tables
type Exporter interface {
	// Write serializes one table to w
	Write(table *model.Table, w io.Writer) error
	// Export writes every table of result into dir and returns the written paths
	Export(result *extractor.Result, dir string) ([]string, error)
}
