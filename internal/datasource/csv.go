package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hmis/m/internal/listing"
)

// CSVSource reads rows from a CSV file whose header row names the fields.
// Cells are kept as strings; the list engine recognizes numbers, ids and
// dates inside them when sorting.
func CSVSource(path string) Source {
	return SourceFunc(func(ctx context.Context) ([]listing.Row, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSV(ctx, f)
	})
}

// CSVSources maps each list to dir/<list>.csv.
func CSVSources(dir string) map[string]Source {
	out := make(map[string]Source, len(Specs))
	for _, s := range Specs {
		out[s.Name] = CSVSource(filepath.Join(dir, s.Name+".csv"))
	}
	return out
}

func readCSV(ctx context.Context, r io.Reader) ([]listing.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []listing.Row
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := make(listing.Row, len(header))
		for i, name := range header {
			row[name] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
