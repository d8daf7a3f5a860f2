package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"netpulse/internal/chart"
	"netpulse/internal/history"
	"netpulse/pkg/logx"
)

const menuText = `
Options:
1. Run Speed Test
2. View Improvement Tips
3. Visualize Current Results
4. Visualize Speed History
5. Exit
`

// Menu runs the interactive loop: five numbered actions, invalid input
// re-prompts, exit waits for a final key-press. The latest record is
// threaded through as an explicit value; before any run in this session it
// falls back to the last persisted record.
func (c *Controller) Menu(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "netpulse — Internet Speed Tester")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	var latest *history.Record
	for {
		fmt.Fprint(out, menuText)
		fmt.Fprint(out, "\nEnter your choice (1-5): ")

		if !sc.Scan() {
			return sc.Err()
		}

		switch strings.TrimSpace(sc.Text()) {
		case "1":
			fmt.Fprintln(out, "\nRunning speed test... (this may take a minute)")
			rec, err := c.Run(ctx)
			if err != nil {
				fmt.Fprintf(out, "Error running speed test: %v\n", err)
				continue
			}
			latest = &rec
			fmt.Fprintln(out)
			fmt.Fprintln(out, Summary(rec))
			fmt.Fprintf(out, "Results logged to %s\n", c.store.Path())

		case "2":
			rec, ok := c.current(latest)
			if !ok {
				fmt.Fprintln(out, "\nRun a speed test first to get personalized tips.")
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, strings.Join(c.Tips(rec), "\n"))

		case "3":
			rec, ok := c.current(latest)
			if !ok {
				fmt.Fprintln(out, "\nNo results to visualize.")
				continue
			}
			path, err := c.RenderSnapshot(rec)
			if err != nil {
				fmt.Fprintf(out, "Error rendering chart: %v\n", err)
				c.log.Warn("snapshot render failed", logx.Err(err))
				continue
			}
			fmt.Fprintf(out, "\nResults visualization saved as %q\n", path)

		case "4":
			path, err := c.RenderHistory()
			if errors.Is(err, chart.ErrNoHistory) {
				fmt.Fprintln(out, "\nNo historical data available. Run some speed tests first.")
				continue
			}
			if err != nil {
				fmt.Fprintf(out, "Error rendering chart: %v\n", err)
				c.log.Warn("history render failed", logx.Err(err))
				continue
			}
			fmt.Fprintf(out, "\nHistory visualization saved as %q\n", path)

		case "5":
			fmt.Fprintln(out, "Exiting...")
			fmt.Fprint(out, "\nPress Enter to exit...")
			sc.Scan()
			return nil

		default:
			fmt.Fprintln(out, "Invalid choice. Please enter a number between 1 and 5.")
		}
	}
}

// current resolves the record an action should operate on: the latest run
// of this session, else the last persisted one.
func (c *Controller) current(latest *history.Record) (history.Record, bool) {
	if latest != nil {
		return *latest, true
	}
	return c.Latest()
}
