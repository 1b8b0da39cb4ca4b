// Package output is the console surface: status lines, the simulate-mode
// plan listing, and the crypto progress bar. Core packages never print;
// they return data or accept observers, and commands render here.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/lkdots/pkg/batch"
	"github.com/arthur-debert/lkdots/pkg/paths"
	"github.com/arthur-debert/lkdots/pkg/planner"
)

// maxProgressPathLen bounds the file name shown next to the progress bar.
const maxProgressPathLen = 50

var bannerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Setup disables color when stdout is not a terminal or NO_COLOR is set.
func Setup() {
	if termenv.EnvNoColor() || !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

// Success prints a green confirmation line.
func Success(msg string) {
	pterm.Success.Println(msg)
}

// Info prints an informational line.
func Info(msg string) {
	pterm.Info.Println(msg)
}

// Warning prints a warning line.
func Warning(msg string) {
	pterm.Warning.Println(msg)
}

// Error prints an error line.
func Error(msg string) {
	pterm.Error.Printfln("%s", msg)
}

// SimulateBanner prints the header announcing that no changes will be
// made.
func SimulateBanner() {
	fmt.Println(bannerStyle.Render("Simulation Mode - No changes will be made"))
	fmt.Println()
}

// PrintOp renders one planned operation the way the simulate listing and
// the deploy status report show them.
func PrintOp(op planner.Op) {
	switch op.Kind {
	case planner.OpMkdirp:
		fmt.Printf("%s %s\n", pterm.Blue("→"), pterm.Cyan(op.Path))
	case planner.OpSymlink:
		fmt.Printf("%s %s → %s\n", pterm.Green("→"), pterm.Cyan(op.Target), op.Source)
	case planner.OpExisted:
		fmt.Printf("%s %s\n", pterm.Gray("•"), pterm.Gray(op.Path+" (already exists)"))
	case planner.OpConflict:
		fmt.Printf("%s %s\n", pterm.Red("✗"), pterm.Red(op.Path+" (CONFLICT)"))
	}
}

// NewProgressObserver starts a progress bar for total files and returns
// the batch observer feeding it plus a stop function for the batch end.
// The observer is called from worker goroutines; pterm's printer is safe
// for that.
func NewProgressObserver(total int, title string) (batch.Observer, func()) {
	bar, err := pterm.DefaultProgressbar.WithTotal(total).WithTitle(title).Start()
	if err != nil {
		// Headless fallback: no bar, no per-file output
		return func(int, int, string) {}, func() {}
	}

	observer := func(completed, total int, path string) {
		bar.UpdateTitle(paths.TruncateDisplay(path, maxProgressPathLen))
		bar.Increment()
	}
	stop := func() {
		bar.UpdateTitle(title)
		_, _ = bar.Stop()
	}
	return observer, stop
}
