package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// ReadXLSX reads the first worksheet of an .xlsx workbook into Records.
// Analysts export quant batches straight from instrument software as
// single-sheet workbooks, so only the first sheet is consulted.
func ReadXLSX(filePath string) (*Records, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	shared := parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml"))
	target := firstSheetPath(
		readZipFile(zr, "xl/workbook.xml"),
		readZipFile(zr, "xl/_rels/workbook.xml.rels"),
	)
	sheetXML := readZipFile(zr, target)
	if len(sheetXML) == 0 {
		return nil, fmt.Errorf("open xlsx: worksheet %s not found", target)
	}

	rr := newSheetRowReader(sheetXML, shared)
	header, ok := rr.Next()
	if !ok || len(header) == 0 {
		return nil, fmt.Errorf("read header: %s has no rows", filePath)
	}
	rec := &Records{Name: filePath, Header: header}
	for {
		row, ok := rr.Next()
		if !ok {
			break
		}
		if len(row) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, row)
			row = tmp
		}
		rec.Rows = append(rec.Rows, row)
	}
	return rec, nil
}

// firstSheetPath resolves the archive path of the workbook's first sheet via
// its relationships, falling back to the conventional sheet1.xml.
func firstSheetPath(workbookXML, relsXML []byte) string {
	rels := parseRelationships(relsXML)
	if rid := firstSheetRID(workbookXML); rid != "" {
		if rel, ok := rels[rid]; ok {
			rel = strings.TrimPrefix(rel, "/")
			if strings.HasPrefix(rel, "xl/") {
				return rel
			}
			return path.Join("xl", rel)
		}
	}
	return "xl/worksheets/sheet1.xml"
}

func firstSheetRID(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "sheet" {
			for _, a := range se.Attr {
				if a.Name.Local == "id" { // r:id
					return a.Value
				}
			}
		}
	}
}

func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	if len(data) == 0 {
		return out
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var id, target string
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "Id":
					id = a.Value
				case "Target":
					target = a.Value
				}
			}
			if id != "" && target != "" {
				out[id] = target
			}
		}
	}
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			b, _ := io.ReadAll(rc)
			return b
		}
	}
	return nil
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "si" {
				buf.Reset()
			}
			if se.Name.Local == "t" {
				inT = true
			}
		case xml.EndElement:
			if se.Name.Local == "t" {
				inT = false
			}
			if se.Name.Local == "si" {
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write([]byte(se))
			}
		}
	}
}

// sheetRowReader streams <row> elements from worksheet XML, resolving shared
// strings and sparse cell references into dense string slices.
type sheetRowReader struct {
	dec    *xml.Decoder
	shared []string
	curRow []string
	maxCol int
	inRow  bool
}

func newSheetRowReader(data []byte, shared []string) *sheetRowReader {
	return &sheetRowReader{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (r *sheetRowReader) Next() ([]string, bool) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				r.inRow = true
				r.curRow = nil
				r.maxCol = 0
			}
			if r.inRow && se.Name.Local == "c" {
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := colIndexFromRef(ref)
				if col+1 > r.maxCol {
					r.maxCol = col + 1
				}
				val := r.readCellValue(typ)
				if len(r.curRow) <= col {
					tmp := make([]string, col+1)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.curRow[col] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				if len(r.curRow) < r.maxCol {
					tmp := make([]string, r.maxCol)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.inRow = false
				return r.curRow, true
			}
		}
	}
}

func (r *sheetRowReader) readCellValue(typ string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					tk, er := r.dec.Token()
					if er != nil {
						break
					}
					if ed, ok := tk.(xml.EndElement); ok && (ed.Name.Local == "v" || ed.Name.Local == "t") {
						break
					}
					if ch, ok := tk.(xml.CharData); ok {
						sb.Write([]byte(ch))
					}
				}
				val = sb.String()
			}
		case xml.EndElement:
			if se.Name.Local == "c" {
				if typ == "s" {
					idx := atoiSafe(val)
					if idx >= 0 && idx < len(r.shared) {
						return r.shared[idx]
					}
					return ""
				}
				return val
			}
		}
	}
}

// colIndexFromRef converts a cell reference like "C12" to a 0-based column.
func colIndexFromRef(ref string) int {
	i := 0
	for i < len(ref) {
		c := ref[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			i++
			continue
		}
		break
	}
	s := strings.ToUpper(ref[:i])
	idx := 0
	for j := 0; j < len(s); j++ {
		idx = idx*26 + int(s[j]-'A'+1)
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}
