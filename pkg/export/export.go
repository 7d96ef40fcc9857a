// Package export renders computed schedules to JSON or CSV. The CSV
// form is one row per machine interval, which is exactly the data a
// Gantt renderer needs.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/kilianp07/jobshop/core/model"
)

// WriteJSON writes the schedule to w in JSON format.
func WriteJSON(w io.Writer, s model.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteCSV writes the schedule to w as machine-interval rows, ordered
// by machine then start time so the output is stable.
func WriteCSV(w io.Writer, s model.Schedule) error {
	type row struct {
		machine string
		jobID   string
		start   int
		end     int
	}
	rows := make([]row, 0, len(s.Assignments))
	for _, a := range s.Sorted() {
		for _, m := range a.Machines {
			rows = append(rows, row{machine: m, jobID: a.JobID, start: a.Start, end: a.End})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].machine != rows[j].machine {
			return rows[i].machine < rows[j].machine
		}
		if rows[i].start != rows[j].start {
			return rows[i].start < rows[j].start
		}
		return rows[i].jobID < rows[j].jobID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"machine", "job_id", "start", "end"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.machine, r.jobID, strconv.Itoa(r.start), strconv.Itoa(r.end)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
