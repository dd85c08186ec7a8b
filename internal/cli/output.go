package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgWhite, color.Bold)
)

const (
	formatJSON  = "json"
	formatTable = "table"
	formatRaw   = "raw"
)

func validFormat(f string) bool {
	switch f {
	case formatJSON, formatTable, formatRaw:
		return true
	}
	return false
}

func success(w io.Writer, format string, a ...interface{}) {
	successColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func failure(w io.Writer, format string, a ...interface{}) {
	errorColor.Fprintf(w, "✗ "+format+"\n", a...)
}

func info(w io.Writer, format string, a ...interface{}) {
	infoColor.Fprintf(w, format+"\n", a...)
}

// render writes res to w in the requested format. V2 bodies are always
// written verbatim.
func render(w io.Writer, res *models.PullResult, format string) error {
	if res.Version == models.APIVersionV2 {
		_, err := w.Write(res.Raw)
		return err
	}

	switch format {
	case formatTable:
		return renderTable(w, res.Records)
	case formatRaw:
		enc := json.NewEncoder(w)
		for _, r := range res.Records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		records := res.Records
		if records == nil {
			records = []models.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
}

func renderTable(w io.Writer, records []models.Record) error {
	t := newTable("DEVICE", "RECEIVED_AT", "PAYLOAD")
	for _, r := range records {
		up := r.Uplink()
		received := ""
		if !up.ReceivedAt.IsZero() {
			received = up.ReceivedAt.UTC().Format(time.RFC3339)
		}
		t.addRow(up.DeviceID, received, formatPayload(up.DecodedPayload))
	}
	return t.render(w)
}

// formatPayload prints decoded fields as sorted key=value pairs.
func formatPayload(p map[string]any) string {
	if len(p) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return strings.Join(parts, " ")
}

type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range t.headers {
		headerColor.Fprintf(w, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w)

	for i := range t.headers {
		fmt.Fprint(w, strings.Repeat("-", widths[i])+"  ")
	}
	fmt.Fprintln(w)

	for _, row := range t.rows {
		for i, cell := range row {
			fmt.Fprintf(w, "%-*s  ", widths[i], cell)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
