package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cpusched/internal/sched"
)

// WriteSummary prints the run header, a per-process table and the averages.
func WriteSummary(w io.Writer, res sched.Result) {
	mode := ""
	if res.Preemptive && res.Policy != sched.RoundRobin {
		mode = "Preemptive "
	}
	fmt.Fprintf(w, "Policy: %s%s", mode, res.Policy)
	if res.Policy == sched.RoundRobin {
		fmt.Fprintf(w, " (quantum %d)", res.Quantum)
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Priority", "Start", "Exit", "Turnaround", "Wait", "Response"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, s := range res.Stats {
		table.Append([]string{
			"p" + strconv.Itoa(int(s.ID)),
			strconv.Itoa(s.Arrival),
			strconv.Itoa(s.Burst),
			strconv.Itoa(s.Priority),
			strconv.Itoa(s.FirstStart),
			strconv.Itoa(s.Completion),
			strconv.Itoa(s.Turnaround()),
			strconv.Itoa(s.Wait),
			strconv.Itoa(s.Response),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "Average",
		fmt.Sprintf("%.2f", res.AvgWait),
		fmt.Sprintf("%.2f", res.AvgResponse)})
	table.Render()

	fmt.Fprintf(w, "Processes run: %d\n", len(res.Stats))
	fmt.Fprintf(w, "Avg. wait time:     %g\n", res.AvgWait)
	fmt.Fprintf(w, "Avg. response time: %g\n", res.AvgResponse)
}

// WriteGantt draws the run segments as a one-line chart with tick marks below.
func WriteGantt(w io.Writer, events []sched.Event) {
	segs := sched.Segments(events)
	if len(segs) == 0 {
		return
	}
	var bar, marks strings.Builder
	bar.WriteString("|")
	prevEnd := segs[0].Start
	marks.WriteString(strconv.Itoa(prevEnd))
	for _, s := range segs {
		if s.Start > prevEnd {
			cell := center("-", 6)
			bar.WriteString(cell + "|")
			marks.WriteString(pad(strconv.Itoa(s.Start), len(cell)+1))
		}
		cell := center("p"+strconv.Itoa(int(s.PID)), 6)
		bar.WriteString(cell + "|")
		marks.WriteString(pad(strconv.Itoa(s.End), len(cell)+1))
		prevEnd = s.End
	}
	fmt.Fprintln(w, "Gantt chart")
	fmt.Fprintln(w, bar.String())
	fmt.Fprintln(w, marks.String())
}

// center pads str to width, splitting the padding around it.
func center(str string, width int) string {
	if len(str) >= width {
		return str
	}
	spaces := (width - len(str)) / 2
	return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
}

// pad right-aligns str in a field of width.
func pad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return strings.Repeat(" ", width-len(str)) + str
}
