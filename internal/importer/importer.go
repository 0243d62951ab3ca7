package importer

import (
	"io"

	"github.com/MrJamesThe3rd/penny/internal/entry"
)

type Format string

const (
	FormatCSV Format = "csv"
)

type Parser interface {
	Parse(r io.Reader) ([]entry.CreateParams, error)
}
