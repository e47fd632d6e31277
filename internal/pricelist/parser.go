package pricelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Supplier lists are Excel exports: semicolon separated, a few banner rows
// before the real header, totals at the bottom. The parser scans for the
// header row as a landmark and then reads rows leniently, skipping anything
// that does not parse instead of failing the whole file.
const (
	colName   = "MATERIAL"
	colWidth  = "ANCHO_CM"
	colLength = "LARGO_CM"
	colPrice  = "PRECIO"
	colCount  = "CANTIDAD"
)

// Row is one purchase line from a supplier price list.
type Row struct {
	Name       string
	WidthCM    float64
	LengthCM   float64
	SheetPrice int64
	SheetCount int
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading price list csv: %w", err)
	}

	idxName, idxWidth, idxLength, idxPrice, idxCount := -1, -1, -1, -1, -1
	headerFound := false

	var rows []Row

	for _, record := range records {
		if !headerFound {
			matches := 0

			for i, col := range record {
				switch strings.ToUpper(strings.TrimSpace(col)) {
				case colName:
					idxName = i
					matches++
				case colWidth:
					idxWidth = i
					matches++
				case colLength:
					idxLength = i
					matches++
				case colPrice:
					idxPrice = i
					matches++
				case colCount:
					idxCount = i
					matches++
				}
			}

			// Name and price are enough to call it the header.
			if matches >= 2 && idxName >= 0 && idxPrice >= 0 {
				headerFound = true
			}

			continue
		}

		row, ok := p.parseRow(record, idxName, idxWidth, idxLength, idxPrice, idxCount)
		if !ok {
			continue
		}

		rows = append(rows, row)
	}

	if !headerFound {
		return nil, fmt.Errorf("no header row with %s and %s columns found", colName, colPrice)
	}

	return rows, nil
}

func (p *Parser) parseRow(record []string, idxName, idxWidth, idxLength, idxPrice, idxCount int) (Row, bool) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[idx])
	}

	row := Row{Name: field(idxName), SheetCount: 1}
	if row.Name == "" {
		return row, false
	}

	price, err := parsePesos(field(idxPrice))
	if err != nil || price <= 0 {
		return row, false
	}

	row.SheetPrice = price
	row.WidthCM = parseDimension(field(idxWidth))
	row.LengthCM = parseDimension(field(idxLength))

	if c := field(idxCount); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			row.SheetCount = n
		}
	}

	return row, true
}

// parsePesos reads amounts the way suppliers write them: "131.378",
// "131378", "$ 131.378,00". Thousands dots are stripped, a decimal comma
// becomes a point, and the result is rounded to whole pesos.
func parsePesos(s string) (int64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(s, "$"))
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}

func parseDimension(s string) float64 {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}
