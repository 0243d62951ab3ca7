package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/penny/internal/entry"
	"github.com/MrJamesThe3rd/penny/internal/importer/csvbudget"
)

type Service struct {
	csvParser Parser
}

func NewService() *Service {
	return &Service{
		csvParser: csvbudget.New(),
	}
}

// Import parses an uploaded file into expense entry params, ready for a
// batched create.
func (s *Service) Import(format Format, r io.Reader) ([]entry.CreateParams, error) {
	var parser Parser

	switch format {
	case FormatCSV:
		parser = s.csvParser
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return parser.Parse(r)
}
