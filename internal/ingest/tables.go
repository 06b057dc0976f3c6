package ingest

import (
	"fmt"
	"strings"

	"github.com/msquant/msquant-cli/internal/quant"
)

// Required columns per logical table (after normalization), mirroring the
// input schema the instrument-export workflow produces.
var (
	quantColumns          = []string{"name", "type"}
	correspondenceColumns = []string{"native", "internal_standard", "external_standard"}
	propertiesColumns     = []string{"sample_name", "sample_type", "volume"}
	spikeColumns          = []string{"name", "amount"}
	qcColumns             = []string{"native", "concentration"}
)

// BuildQuant splits the quant table into its area and concentration halves.
// Every column other than name and type is a sample column; each row lands
// in the half named by its type cell.
func BuildQuant(rec *Records) (areas, concs *quant.Table, err error) {
	header := normalizeHeader(rec.Header)
	idx, missing := columnIndex(header, quantColumns)
	if len(missing) > 0 {
		return nil, nil, missingColumnsErr("quant", missing)
	}

	type sampleCol struct {
		name string
		pos  int
	}
	var sampleCols []sampleCol
	for i, h := range header {
		if i == idx["name"] || i == idx["type"] {
			continue
		}
		sampleCols = append(sampleCols, sampleCol{name: h, pos: i})
	}
	if len(sampleCols) == 0 {
		return nil, nil, &quant.ValidationError{Msg: "quant table has no sample columns"}
	}

	areas, concs = quant.NewTable(), quant.NewTable()
	for rowNum, row := range rec.Rows {
		name := NormalizeKey(row[idx["name"]])
		typ := NormalizeKey(row[idx["type"]])
		var dst *quant.Table
		switch typ {
		case "area":
			dst = areas
		case "concentration":
			dst = concs
		default:
			return nil, nil, &quant.ValidationError{
				Msg: fmt.Sprintf("quant row %d: type must be area or concentration, got %q", rowNum+2, row[idx["type"]]),
			}
		}
		for _, sc := range sampleCols {
			cell := row[sc.pos]
			if strings.TrimSpace(cell) == "" {
				continue
			}
			v, ok := parseNumeric(cell)
			if !ok {
				return nil, nil, &quant.ValidationError{
					Msg: fmt.Sprintf("quant row %d, column %q: %q is not numeric", rowNum+2, sc.name, cell),
				}
			}
			dst.Set(name, sc.name, v)
		}
	}
	return areas, concs, nil
}

// BuildCorrespondence reads the native -> IS/RS mapping.
func BuildCorrespondence(rec *Records) ([]quant.Correspondence, error) {
	header := normalizeHeader(rec.Header)
	idx, missing := columnIndex(header, correspondenceColumns)
	if len(missing) > 0 {
		return nil, missingColumnsErr("is_correspondence", missing)
	}
	var out []quant.Correspondence
	for _, row := range rec.Rows {
		out = append(out, quant.Correspondence{
			Native:           NormalizeKey(row[idx["native"]]),
			InternalStandard: NormalizeKey(row[idx["internal_standard"]]),
			ExternalStandard: NormalizeKey(row[idx["external_standard"]]),
		})
	}
	return out, nil
}

// BuildProperties reads the per-sample category and extraction volume rows.
func BuildProperties(rec *Records) ([]quant.SampleProperty, error) {
	header := normalizeHeader(rec.Header)
	idx, missing := columnIndex(header, propertiesColumns)
	if len(missing) > 0 {
		return nil, missingColumnsErr("sample_properties", missing)
	}
	var out []quant.SampleProperty
	for rowNum, row := range rec.Rows {
		vol, ok := parseNumeric(row[idx["volume"]])
		if !ok {
			return nil, &quant.ValidationError{
				Msg: fmt.Sprintf("sample_properties row %d: volume %q is not numeric", rowNum+2, row[idx["volume"]]),
			}
		}
		out = append(out, quant.SampleProperty{
			Name:   NormalizeKey(row[idx["sample_name"]]),
			Type:   quant.SampleType(NormalizeKey(row[idx["sample_type"]])),
			Volume: vol,
		})
	}
	return out, nil
}

// BuildSpikeAmounts reads the standard -> spiked amount (pg) table.
func BuildSpikeAmounts(rec *Records) (quant.Series, error) {
	return buildSeries(rec, "is_concentration", spikeColumns)
}

// BuildQCReference reads the native -> theoretical concentration (ng/mL)
// table.
func BuildQCReference(rec *Records) (quant.Series, error) {
	return buildSeries(rec, "qc_reference", qcColumns)
}

func buildSeries(rec *Records, table string, cols []string) (quant.Series, error) {
	header := normalizeHeader(rec.Header)
	idx, missing := columnIndex(header, cols)
	if len(missing) > 0 {
		return quant.Series{}, missingColumnsErr(table, missing)
	}
	keyCol, valCol := cols[0], cols[1]
	out := quant.NewSeries()
	for rowNum, row := range rec.Rows {
		v, ok := parseNumeric(row[idx[valCol]])
		if !ok {
			return quant.Series{}, &quant.ValidationError{
				Msg: fmt.Sprintf("%s row %d: %s %q is not numeric", table, rowNum+2, valCol, row[idx[valCol]]),
			}
		}
		out.Set(NormalizeKey(row[idx[keyCol]]), v)
	}
	return out, nil
}

func missingColumnsErr(table string, missing []string) error {
	return &quant.ValidationError{
		Msg: fmt.Sprintf("%s table is missing columns: %s", table, strings.Join(missing, ", ")),
	}
}
