package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"taskpad/internal/task"
)

// ExportFormats lists the formats accepted by Export.
var ExportFormats = []string{"json", "yaml", "csv", "pdf"}

// record is the flat form of a task used by yaml, csv and pdf exports.
type record struct {
	ID        int64  `yaml:"id"`
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed"`
	Priority  bool   `yaml:"priority"`
	Category  string `yaml:"category"`
	DueDate   string `yaml:"dueDate,omitempty"`
	CreatedAt string `yaml:"createdAt"`
}

func toRecord(t task.Task) record {
	r := record{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Priority:  t.Priority,
		Category:  string(t.Category),
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		r.DueDate = t.DueDate.String()
	}
	return r
}

// Export writes tasks to w in the named format.
func Export(w io.Writer, format string, tasks []task.Task) error {
	switch strings.ToLower(format) {
	case "json":
		if tasks == nil {
			tasks = []task.Task{}
		}
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		records := make([]record, len(tasks))
		for i, t := range tasks {
			records[i] = toRecord(t)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "text", "completed", "priority", "category", "dueDate", "createdAt"})
		for _, t := range tasks {
			r := toRecord(t)
			_ = cw.Write([]string{
				strconv.FormatInt(r.ID, 10), r.Text,
				strconv.FormatBool(r.Completed), strconv.FormatBool(r.Priority),
				r.Category, r.DueDate, r.CreatedAt,
			})
		}
		cw.Flush()
		return cw.Error()
	case "pdf":
		return exportPDF(w, tasks)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

func exportPDF(w io.Writer, tasks []task.Task) error {
	st := task.StatsOf(tasks)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task List", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%d total, %d completed, %d pending, %d%% complete",
		st.Total, st.Completed, st.Pending, st.PercentComplete))
	pdf.Ln(10)

	for i, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		mark := ""
		if t.Priority {
			mark = "! "
		}
		line := fmt.Sprintf("%d. %s %s%s (%s", i+1, box, mark, normalizeText(t.Text), t.Category)
		if t.DueDate != nil {
			line += ", due " + t.DueDate.String()
		}
		line += ")"
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	return pdf.Output(w)
}
