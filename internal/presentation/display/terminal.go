// Package display renders the live watch view in the alternate screen
// buffer, redrawing on every snapshot update.
package display

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"callscope/internal/core/model"
	"callscope/internal/core/poller"
	"callscope/internal/util"
)

// WatchView is everything one frame of the watch screen needs.
type WatchView struct {
	Target     string
	Name       string
	State      poller.State
	Records    []model.CallRecord
	Aggregates model.Aggregates
	LastUpdate time.Time
	Err        error
	Paused     bool
}

// TerminalDisplay draws watch frames to stdout.
type TerminalDisplay struct {
	inAlternateScreen bool
}

func NewTerminalDisplay() *TerminalDisplay {
	return &TerminalDisplay{}
}

// EnterAlternateScreen switches to the alternate screen buffer.
func (td *TerminalDisplay) EnterAlternateScreen() {
	if !td.inAlternateScreen {
		fmt.Print(util.AltScreenEnter)
		fmt.Print(util.ClearScreen)
		fmt.Print(util.ClearScrollback)
		fmt.Print(util.MoveCursorHome)
		fmt.Print(util.HideCursor)
		td.inAlternateScreen = true
	}
}

// ExitAlternateScreen returns to the normal screen buffer.
func (td *TerminalDisplay) ExitAlternateScreen() {
	if td.inAlternateScreen {
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		fmt.Print(util.ShowCursor)
		fmt.Print(util.AltScreenExit)
		td.inAlternateScreen = false
	}
}

// Render draws one frame. It repositions instead of clearing so an
// unchanged frame does not flicker.
func (td *TerminalDisplay) Render(view WatchView) {
	width, height := terminalSize()

	fmt.Print(util.MoveCursorHome)

	title := fmt.Sprintf("Watching %s", view.Target)
	if view.Name != "" {
		title = fmt.Sprintf("Watching %s (%s)", view.Name, view.Target)
	}
	lineWidth := min(width, 80)
	fmt.Printf("%s%s%s\n", util.ColorBold, util.CenterText(title, lineWidth), util.ColorReset)
	fmt.Println(strings.Repeat("─", lineWidth))

	td.renderStatusLine(view)
	td.renderAggregates(view.Aggregates)
	fmt.Println()

	// Header, separators, status and hints take up the fixed rows; the
	// rest of the terminal shows the newest records.
	maxRecords := height - 12
	if maxRecords < 1 {
		maxRecords = 1
	}
	td.renderRecords(view, maxRecords)

	fmt.Println()
	fmt.Printf("%s q quit · r refresh · p pause%s\n", util.ColorDim, util.ColorReset)
	fmt.Print(util.ClearToEnd)
}

func (td *TerminalDisplay) renderStatusLine(view WatchView) {
	state := view.State.String()
	color := util.ColorGreen
	if view.Paused {
		state = "PAUSED"
		color = util.ColorYellow
	} else if view.State != poller.StatePolling {
		color = util.ColorYellow
	}

	updated := "never"
	if !view.LastUpdate.IsZero() {
		updated = util.GetTimeProvider().Format(view.LastUpdate, "15:04:05")
	}
	fmt.Printf("Status: %s%s%s   Updated: %s\n", color, state, util.ColorReset, updated)

	fmt.Print(util.ClearLine)
	if view.Err != nil {
		fmt.Printf("%sLast poll failed: %v%s\n", util.ColorRed, view.Err, util.ColorReset)
	} else {
		fmt.Println()
	}
}

func (td *TerminalDisplay) renderAggregates(agg model.Aggregates) {
	fmt.Printf("Calls: %d total · %d in · %d out · %d missed   Talk time: %s\n",
		agg.Total(), agg.Incoming, agg.Outgoing, agg.Missed,
		util.FormatCallDuration(agg.TotalDurationSeconds))
}

func (td *TerminalDisplay) renderRecords(view WatchView, maxRecords int) {
	if len(view.Records) == 0 {
		fmt.Println("  No calls yet")
		return
	}

	tp := util.GetTimeProvider()
	now := tp.Now()
	shown := view.Records
	if len(shown) > maxRecords {
		shown = shown[:maxRecords]
	}

	for _, rec := range shown {
		marker := directionMarker(rec.Direction)
		fmt.Print(util.ClearLine)
		fmt.Printf("  %s %-9s %9s  %s\n",
			marker, tp.FormatRelative(now, rec.Timestamp),
			util.FormatCallDuration(rec.Duration), string(rec.Direction))
	}
	if len(view.Records) > maxRecords {
		fmt.Printf("  %s… %d more%s\n", util.ColorDim, len(view.Records)-maxRecords, util.ColorReset)
	}
}

func directionMarker(d model.Direction) string {
	switch d {
	case model.DirectionIncoming:
		return util.ColorGreen + "↓" + util.ColorReset
	case model.DirectionOutgoing:
		return util.ColorCyan + "↑" + util.ColorReset
	case model.DirectionMissed:
		return util.ColorRed + "✗" + util.ColorReset
	default:
		return util.ColorYellow + "•" + util.ColorReset
	}
}

func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		width, height = 80, 24
	}
	return width, height
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
