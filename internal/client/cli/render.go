package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	return t
}

func renderSummary(w io.Writer, cards []models.Timecard, editing int) {
	t := newTable(w, "#", "Name", "Days", "Total Hours")
	for i, c := range cards {
		n := strconv.Itoa(i + 1)
		if i == editing {
			n += "*"
		}
		t.Append([]string{n, c.Name, strconv.Itoa(len(c.Days)), c.TotalHoursWorked})
	}
	t.Render()
}

func renderCard(w io.Writer, i int, c models.Timecard) {
	fmt.Fprintf(w, "Card %d: %s\n", i+1, c.Name)

	t := newTable(w, "Day", "Time In", "Time Out", "Hours Worked")
	for _, d := range c.Days {
		t.Append([]string{d.Day, d.TimeIn, d.TimeOut, d.HoursWorked})
	}
	t.SetFooter([]string{"", "", "Total", c.TotalHoursWorked})
	t.Render()
}
