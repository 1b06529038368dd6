// Package export writes a generated dataset to JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jmehdipour/churn-insights/internal/dataset"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func (f Format) Valid() bool { return f == FormatJSON || f == FormatCSV }

// Header is the CSV column order.
var Header = []string{
	"CustomerID", "Tenure", "MonthlyCharges", "TotalCharges",
	"ContractType", "PaymentMethod", "InternetService", "Churn",
}

func WriteJSON(w io.Writer, ds *dataset.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds.Records()); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		row := []string{
			r.CustomerID,
			strconv.Itoa(r.Tenure),
			r.MonthlyCharges.StringFixed(2),
			r.TotalCharges.StringFixed(2),
			r.ContractType.String(),
			r.PaymentMethod.String(),
			r.InternetService.String(),
			r.Churn.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", r.CustomerID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func Write(w io.Writer, ds *dataset.Dataset, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, ds)
	case FormatCSV:
		return WriteCSV(w, ds)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// ToFile creates the parent folder and writes ds to filename.
func ToFile(filename string, ds *dataset.Dataset, format Format) error {
	if !format.Valid() {
		return fmt.Errorf("unknown export format %q", format)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, ds, format); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func TimestampedFilename(baseDir, name string, format Format, now time.Time) string {
	t := now.Format("20060102_150405")
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.%s", name, t, format))
}
