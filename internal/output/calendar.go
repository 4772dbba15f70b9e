package output

import (
	"fmt"
	"io"
	"strings"

	"taskflow/internal/datekey"
)

// FormatCalendar renders a month grid. Days with tasks are marked with an
// asterisk; today is highlighted with brackets when it falls inside the
// month.
func FormatCalendar(w io.Writer, month datekey.Month, counts map[datekey.Key]int, today datekey.Key) {
	fmt.Fprintf(w, "%s %d\n", month.Month.String(), month.Year)
	fmt.Fprintln(w, " Su  Mo  Tu  We  Th  Fr  Sa")

	days := month.Days()
	col := int(month.FirstWeekday())
	line := strings.Repeat("    ", col)

	for i, day := range days {
		n := i + 1
		cell := fmt.Sprintf("%3d ", n)
		switch {
		case day == today:
			cell = fmt.Sprintf("[%2d]", n)
		case counts[day] > 0:
			cell = fmt.Sprintf("%3d*", n)
		}
		line += cell
		col++
		if col == 7 {
			fmt.Fprintln(w, strings.TrimRight(line, " "))
			line = ""
			col = 0
		}
	}
	if line != "" {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
