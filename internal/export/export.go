package export

import (
	"bytes"
	stdjson "encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/emilianohg/launchtracker/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// BaseName is the file name, without extension, of every export.
const BaseName = "lanci-creativi"

var csvHeader = []string{"Nome", "Shop", "Stato", "Priorita'", "Data Inizio", "Data Fine", "Note"}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	}
	return "", errors.Errorf("unknown export format %q", s)
}

func (f Format) FileName() string {
	return BaseName + "." + string(f)
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func csvRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quote(f)
	}
	return strings.Join(quoted, ",")
}

// WriteCSV writes one quoted row per launch with raw shop, status and priority ids.
// Rows are separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, launches []models.Launch) error {
	rows := make([]string, 0, len(launches)+1)
	rows = append(rows, csvRow(csvHeader))
	for _, l := range launches {
		rows = append(rows, csvRow([]string{l.Name, l.Shop, l.Status, l.Priority, l.StartDate, l.EndDate, l.Notes}))
	}
	_, err := io.WriteString(w, strings.Join(rows, "\n"))
	return errors.WithStack(err)
}

// WriteJSON writes the launches as a 2-space indented array.
func WriteJSON(w io.Writer, launches []models.Launch) error {
	if launches == nil {
		launches = []models.Launch{}
	}
	data, err := json.Marshal(launches)
	if err != nil {
		return errors.Wrap(err, "failed encode launches")
	}
	// jsoniter does not re-indent the output of custom marshalers.
	var out bytes.Buffer
	if err := stdjson.Indent(&out, data, "", "  "); err != nil {
		return errors.WithStack(err)
	}
	_, err = out.WriteTo(w)
	return errors.WithStack(err)
}

func Write(w io.Writer, format Format, launches []models.Launch) error {
	switch format {
	case CSV:
		return WriteCSV(w, launches)
	case JSON:
		return WriteJSON(w, launches)
	}
	return errors.Errorf("unknown export format %q", format)
}

// ToFile writes the export into dir and returns the file path.
func ToFile(dir string, format Format, launches []models.Launch) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.WithStack(err)
	}
	path := filepath.Join(dir, format.FileName())

	f, err := os.Create(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer f.Close()

	if err := Write(f, format, launches); err != nil {
		return "", errors.Wrapf(err, "failed write %s", path)
	}
	return path, nil
}
