package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding of the source dataset.
type Encoding string

const (
	EncodingLatin1 Encoding = "latin1"
	EncodingUTF8   Encoding = "utf8"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// column keys are header names lower-cased with all spaces removed.
const (
	colBrand        = "companynames"
	colName         = "carsnames"
	colEngine       = "engines"
	colCapacity     = "cc/batterycapacity"
	colHorsepower   = "horsepower"
	colTopSpeed     = "totalspeed"
	colAcceleration = "performance(0-100)km/h"
	colPrice        = "carsprices"
	colFuel         = "fueltypes"
	colSeats        = "seats"
	colTorque       = "torque"
)

func columnKey(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimPrefix(h, "\ufeff")), ""))
}

// LoadFile reads a catalog dataset from disk.
func LoadFile(path string, enc Encoding) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, enc)
}

// ReadCSV parses a dataset with a header row. Columns are matched by name,
// ignoring case and spacing; only the brand and price columns are required.
func ReadCSV(r io.Reader, enc Encoding) ([]Row, error) {
	if enc == EncodingLatin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: empty dataset")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[columnKey(h)] = i
	}
	for _, req := range []string{colBrand, colPrice} {
		if _, ok := idx[req]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}

	cell := func(rec []string, key string) string {
		i, ok := idx[key]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rows = append(rows, Row{
			Brand:        cell(rec, colBrand),
			Name:         cell(rec, colName),
			Engine:       cell(rec, colEngine),
			Capacity:     cell(rec, colCapacity),
			Horsepower:   cell(rec, colHorsepower),
			TopSpeed:     cell(rec, colTopSpeed),
			Acceleration: cell(rec, colAcceleration),
			Price:        cell(rec, colPrice),
			FuelType:     cell(rec, colFuel),
			Seats:        cell(rec, colSeats),
			Torque:       cell(rec, colTorque),
		})
	}
	return rows, nil
}
