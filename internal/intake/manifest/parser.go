package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/kmutua/metertrack/internal/encoding"
	"github.com/kmutua/metertrack/internal/meter"
)

// Parser reads supplier delivery manifests and produces meters for stock
// intake. It auto-detects which supplier format is being used by matching
// column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]meter.NewMeter, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	// Profiles disagree on the delimiter, so try each one the profiles use.
	for _, comma := range []rune{',', ';'} {
		reader := csv.NewReader(bytes.NewReader(content))
		reader.Comma = comma
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows, comma)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no matching supplier format found")
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string, comma rune) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].Comma != comma {
				continue
			}

			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts meters from data rows using the matched profile.
// headerRowNum is the 0-based index of the header (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]meter.NewMeter, error) {
	serialIdx := cols[p.SerialCol]

	seen := make(map[string]int)

	var meters []meter.NewMeter

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		serial := cellValue(row, serialIdx)
		if serial == "" {
			// Footer and padding rows have no serial.
			continue
		}

		if prev, dup := seen[serial]; dup {
			return nil, fmt.Errorf("row %d: serial %s already listed on row %d", rowNum, serial, prev)
		}

		seen[serial] = rowNum

		meterType, err := rowType(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		meters = append(meters, meter.NewMeter{SerialNumber: serial, Type: meterType})
	}

	if len(meters) == 0 {
		return nil, fmt.Errorf("manifest contains no meters")
	}

	return meters, nil
}

func rowType(p *Profile, cols colIndex, row []string) (string, error) {
	if p.TypeMode == typeFixed {
		return p.FixedType, nil
	}

	label := cellValue(row, cols[p.TypeCol])

	normalized, ok := typeAliases[strings.ToLower(label)]
	if !ok {
		return "", fmt.Errorf("unknown meter type %q", label)
	}

	return normalized, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
