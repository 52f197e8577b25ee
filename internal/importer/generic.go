package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// GenericParser parses a minimal date,description,amount CSV, the format
// most banks can be coaxed into exporting.
type GenericParser struct{}

const (
	genericNumFields = 3
	genericColDate   = 0
	genericColDesc   = 1
	genericColAmount = 2
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns BankRows. Dates must be ISO
// calendar dates (2006-01-02).
func (p *GenericParser) Parse(r io.Reader) ([]BankRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []BankRow
	for i, rec := range records[1:] {
		date, err := time.Parse("2006-01-02", rec[genericColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[genericColDate], err)
		}
		amount, err := decimal.NewFromString(rec[genericColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[genericColAmount], err)
		}
		desc := rec[genericColDesc]
		rows = append(rows, BankRow{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Reference:   makeRef("generic", date, desc),
		})
	}
	return rows, nil
}
