package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (default: "y")
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// ErrNoData is returned when a CSV source yields no usable observations.
var ErrNoData = errors.New("no valid data found in CSV")

var missingValues = map[string]bool{"": true, "NA": true, "NaN": true, "null": true}

var fallbackDateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006 Jan",
	"2006",
}

type columns struct {
	value, date, id int
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return series, nil
}

// LoadCSVFromReader loads a time series from an io.Reader.
// Rows with missing or unparsable values are skipped.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	cols := columns{value: 1, date: 0, id: -1}
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		cols = resolveColumns(header, opts)
	}

	var values []float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if opts.IDFilter != "" && cols.id >= 0 && cols.id < len(record) {
			if clean(record[cols.id]) != opts.IDFilter {
				continue
			}
		}

		if cols.value < 0 || cols.value >= len(record) {
			continue
		}
		raw := clean(record[cols.value])
		if missingValues[raw] {
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		values = append(values, val)

		if cols.date >= 0 && cols.date < len(record) {
			if ts, ok := parseDate(clean(record[cols.date]), opts.DateFormat); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}

	name := opts.ValueColumn
	if opts.IDFilter != "" {
		name = opts.IDFilter + "/" + name
	}

	if len(timestamps) == len(values) {
		return &Series{Timestamps: timestamps, Values: values, Name: name}, nil
	}

	s := New(values)
	s.Name = name
	return s, nil
}

func resolveColumns(header []string, opts *CSVOptions) columns {
	cols := columns{value: -1, date: -1, id: -1}
	for i, h := range header {
		h = clean(h)
		switch {
		case h == opts.ValueColumn || (opts.ValueColumn == "" && (h == "y" || h == "value" || h == "Value")):
			cols.value = i
		case opts.DateColumn != "" && h == opts.DateColumn:
			cols.date = i
		case h == "ds" || h == "date" || h == "Date" || h == "Month" || h == "Quarter" || h == "Year":
			if cols.date == -1 {
				cols.date = i
			}
		case opts.IDColumn != "" && h == opts.IDColumn:
			cols.id = i
		case h == "unique_id" || h == "id" || h == "ID":
			if cols.id == -1 && opts.IDColumn == "" {
				cols.id = i
			}
		}
	}
	if cols.value == -1 {
		cols.value = len(header) - 1
	}
	return cols
}

func parseDate(s, preferred string) (time.Time, bool) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range fallbackDateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename string, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = column
	return LoadCSV(filename, opts)
}

// LoadCSVFiltered loads a filtered series from a CSV file.
func LoadCSVFiltered(filename string, idColumn, idValue, valueColumn string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.IDColumn = idColumn
	opts.IDFilter = idValue
	if valueColumn != "" {
		opts.ValueColumn = valueColumn
	}
	return LoadCSV(filename, opts)
}

// WriteCSV writes the series as "ds,y" rows, or "index,y" when timestamps are absent.
func WriteCSV(w io.Writer, series *Series) error {
	writer := csv.NewWriter(w)
	dated := len(series.Timestamps) == len(series.Values)

	header := []string{"index", "y"}
	if dated {
		header[0] = "ds"
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, v := range series.Values {
		key := strconv.Itoa(i + 1)
		if dated {
			key = series.Timestamps[i].Format("2006-01-02")
		}
		if err := writer.Write([]string{key, strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV saves a time series to a CSV file.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, series); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
