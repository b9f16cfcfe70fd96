// Package export writes post-processed record sequences as CSV or JSON for
// the external analysis pipeline.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/record"
)

// Document is the JSON export layout: run settings plus the full record
// sequence.
type Document struct {
	Step    float64         `json:"step"`
	Horizon float64         `json:"horizon"`
	M1      float64         `json:"m1"`
	M2      float64         `json:"m2"`
	L1      float64         `json:"l1"`
	L2      float64         `json:"l2"`
	G       float64         `json:"g"`
	Samples int             `json:"samples"`
	Records []record.Record `json:"records"`
}

func WriteJSON(w io.Writer, step, horizon float64, p mech.Params, recs []record.Record) error {
	doc := Document{
		Step:    step,
		Horizon: horizon,
		M1:      p.M1, M2: p.M2,
		L1: p.L1, L2: p.L2,
		G:       p.G,
		Samples: len(recs),
		Records: recs,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func WriteCSV(w io.Writer, recs []record.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(record.Fields); err != nil {
		return err
	}

	row := make([]string, len(record.Fields))
	for _, r := range recs {
		for i, v := range r.Row() {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SeriesCSV writes a two-column (t, value) series, used for divergence
// exports.
func SeriesCSV(w io.Writer, name string, times, values []float64) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"t", name}); err != nil {
		return err
	}
	for i := range values {
		err := cw.Write([]string{
			strconv.FormatFloat(times[i], 'g', -1, 64),
			strconv.FormatFloat(values[i], 'g', -1, 64),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func CSVFile(path string, recs []record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, recs)
}

func JSONFile(path string, step, horizon float64, p mech.Params, recs []record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, step, horizon, p, recs)
}
