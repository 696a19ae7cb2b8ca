package reader

import (
	"encoding/json"

	"github.com/xuri/excelize/v2"

	"github.com/rootuip/docintel/internal/core/domain"
)

// readSpreadsheet serializes every sheet into one JSON text blob so the
// downstream stages can pattern-match spreadsheets the same way as prose.
func (r *Reader) readSpreadsheet(path string, size int64) (domain.RawDocument, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "open spreadsheet", err)
	}
	defer wb.Close()

	sheets := make(map[string][][]string)
	names := wb.GetSheetList()
	for _, name := range names {
		rows, err := wb.GetRows(name)
		if err != nil {
			return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "read sheet rows", err)
		}
		sheets[name] = rows
	}

	blob, err := json.Marshal(sheets)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "serialize sheets", err)
	}

	return domain.RawDocument{
		Format:    domain.FormatSpreadsheet,
		Text:      string(blob),
		PageCount: len(names),
		ByteSize:  size,
	}, nil
}
