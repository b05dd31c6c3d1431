// Package xlsx extracts rows of string cells from a zip-based
// spreadsheet container. It resolves shared and inline strings into a
// plain 2-D grid and deliberately supports nothing else: no styles, no
// formulas, no multiple sheets.
package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// IsSpreadsheet reports whether content starts with the zip container
// magic number used by xlsx files.
func IsSpreadsheet(content []byte) bool {
	return bytes.HasPrefix(content, zipMagic)
}

// --- XML Data Structures ---

type sharedStringsXML struct {
	XMLName xml.Name        `xml:"sst"`
	Items   []sharedItemXML `xml:"si"`
}

type sharedItemXML struct {
	Text string             `xml:"t"`
	Runs []sharedItemXMLRun `xml:"r"`
}

type sharedItemXMLRun struct {
	Text string `xml:"t"`
}

func (s sharedItemXML) value() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	var b strings.Builder
	for _, r := range s.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

type worksheetXML struct {
	XMLName xml.Name `xml:"worksheet"`
	Rows    []rowXML `xml:"sheetData>row"`
}

type rowXML struct {
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	Ref    string        `xml:"r,attr"`
	Type   string        `xml:"t,attr"`
	Value  string        `xml:"v"`
	Inline sharedItemXML `xml:"is"`
}

// ReadRows unzips the container in memory and returns the first
// worksheet as a grid of strings. A missing shared-string table, empty
// sheets and missing cells are not errors; only an unreadable container
// or unparsable worksheet XML is.
func ReadRows(content []byte) ([][]string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet container: %w", err)
	}

	shared, err := readSharedStrings(archive)
	if err != nil {
		return nil, err
	}

	sheetFile := firstWorksheet(archive)
	if sheetFile == nil {
		return nil, fmt.Errorf("spreadsheet container has no worksheet")
	}
	sheetData, err := readZipFile(sheetFile)
	if err != nil {
		return nil, fmt.Errorf("reading worksheet part: %w", err)
	}

	var sheet worksheetXML
	if err := xml.Unmarshal(sheetData, &sheet); err != nil {
		return nil, fmt.Errorf("parsing worksheet XML: %w", err)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, resolveRow(row, shared))
	}
	return rows, nil
}

// firstWorksheet returns the lexically first xl/worksheets/*.xml part.
func firstWorksheet(archive *zip.Reader) *zip.File {
	var candidates []*zip.File
	for _, f := range archive.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/") && strings.HasSuffix(f.Name, ".xml") {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return candidates[0]
}

func readSharedStrings(archive *zip.Reader) ([]string, error) {
	var file *zip.File
	for _, f := range archive.File {
		if f.Name == "xl/sharedStrings.xml" {
			file = f
			break
		}
	}
	if file == nil {
		// No shared strings table is fine; cells then only hold
		// inline strings or literals.
		return nil, nil
	}
	data, err := readZipFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading shared strings part: %w", err)
	}
	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, fmt.Errorf("parsing shared strings XML: %w", err)
	}
	values := make([]string, len(sst.Items))
	for i, item := range sst.Items {
		values[i] = item.value()
	}
	return values, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resolveRow places each cell at its declared column index, falling
// back to sequential position when the cell carries no reference, and
// pads gaps with empty strings.
func resolveRow(row rowXML, shared []string) []string {
	type placed struct {
		col   int
		value string
	}
	cells := make([]placed, 0, len(row.Cells))
	next := 0
	maxCol := -1
	for _, cell := range row.Cells {
		col := columnIndex(cell.Ref)
		if col < 0 {
			col = next
		}
		next = col + 1
		if col > maxCol {
			maxCol = col
		}
		cells = append(cells, placed{col: col, value: cellValue(cell, shared)})
	}
	if maxCol < 0 {
		return []string{}
	}
	out := make([]string, maxCol+1)
	for _, c := range cells {
		out[c.col] = c.value
	}
	return out
}

// cellValue resolves a cell by its declared type: shared-string index,
// inline string, or literal. Unknown types and unresolvable shared
// string indexes yield the empty string.
func cellValue(cell cellXML, shared []string) string {
	switch cell.Type {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(cell.Value))
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		return cell.Inline.value()
	case "", "n", "str", "b":
		return cell.Value
	default:
		return ""
	}
}

// columnIndex decodes the column letters of a cell reference like
// "BC12" into a 0-based index. Returns -1 when the reference has no
// leading letters.
func columnIndex(ref string) int {
	idx := 0
	seen := false
	for _, r := range ref {
		switch {
		case r >= 'A' && r <= 'Z':
			idx = idx*26 + int(r-'A'+1)
			seen = true
		case r >= 'a' && r <= 'z':
			idx = idx*26 + int(r-'a'+1)
			seen = true
		default:
			if !seen {
				return -1
			}
			return idx - 1
		}
	}
	if !seen {
		return -1
	}
	return idx - 1
}
