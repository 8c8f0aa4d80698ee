// Package export serializes finished report structures to files. Exporters
// consume only the reports' plain data shapes; all aggregation happens
// upstream in the service layer.
package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Format selects the output serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

var (
	// ErrUnknownFormat is returned for a format outside csv/json/pdf.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrUnsupportedReport is returned when a report shape has no rendering
	// for the requested format.
	ErrUnsupportedReport = errors.New("unsupported report shape for this export format")
)

// Exporter writes report files under a base directory.
type Exporter struct {
	dir string
	log zerolog.Logger
}

// NewExporter creates an Exporter rooted at dir.
func NewExporter(dir string, log zerolog.Logger) *Exporter {
	return &Exporter{
		dir: dir,
		log: log.With().Str("component", "exporter").Logger(),
	}
}

// Export serializes the report in the given format and returns the absolute
// path of the file written. The matching extension is appended to filename
// when missing.
func (e *Exporter) Export(report interface{}, format Format, filename string) (string, error) {
	switch format {
	case FormatCSV:
		return e.ToCSV(report, filename)
	case FormatJSON:
		return e.ToJSON(report, filename)
	case FormatPDF:
		return e.ToPDF(report, filename)
	default:
		return "", ErrUnknownFormat
	}
}

// resolve turns a caller-supplied filename into the absolute path to write,
// appending ext when missing and creating the target directory. Relative
// filenames land under the exporter's base directory.
func (e *Exporter) resolve(filename, ext string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ext) {
		filename += ext
	}
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(e.dir, filename)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return "", err
	}
	return filepath.Abs(filename)
}
