package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/boardfit/pkg/pipeline"
)

// solveProgressMsg carries running search totals into the TUI.
type solveProgressMsg struct {
	frames     int
	candidates int
	elapsed    time.Duration
}

// solveDoneMsg ends the TUI when the pipeline returns.
type solveDoneMsg struct {
	result *pipeline.Result
	err    error
}

// spinTickMsg advances the spinner animation.
type spinTickMsg time.Time

// solveModel is the bubbletea model behind `solve --watch`: a live view
// of the search burning through its budget.
type solveModel struct {
	budget     time.Duration
	frames     int
	candidates int
	elapsed    time.Duration
	spin       int
	done       bool
	cancelled  bool
}

var spinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func newSolveModel(budget time.Duration) solveModel {
	return solveModel{budget: budget}
}

func spinTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return spinTickMsg(t)
	})
}

func (m solveModel) Init() tea.Cmd {
	return spinTick()
}

func (m solveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	case solveProgressMsg:
		m.frames = msg.frames
		m.candidates = msg.candidates
		m.elapsed = msg.elapsed
	case solveDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinTickMsg:
		m.spin++
		return m, spinTick()
	}
	return m, nil
}

func (m solveModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Searching for a placement"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	frame := spinFrames[m.spin%len(spinFrames)]
	b.WriteString(styleIconSpinner.Render(frame))
	b.WriteString(" ")
	b.WriteString(StyleValue.Render(fmt.Sprintf("%d frames · %d candidates", m.frames, m.candidates)))
	b.WriteString("\n\n")

	b.WriteString(renderBudgetBar(m.elapsed, m.budget, 30))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s / %s", m.elapsed.Round(10*time.Millisecond), m.budget)))
	b.WriteString("\n")

	return b.String()
}

// renderBudgetBar draws elapsed time against the budget as a fixed-width bar.
func renderBudgetBar(elapsed, budget time.Duration, width int) string {
	if budget <= 0 || width <= 0 {
		return ""
	}
	frac := float64(elapsed) / float64(budget)
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if frac >= 0.9 {
		return StyleWarning.Render(bar)
	}
	return styleIconSpinner.Render(bar)
}

// solveWatched runs the pipeline with a live progress view. Quitting
// the view cancels the search; the pipeline's result is returned either
// way.
func (c *CLI) solveWatched(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newSolveModel(opts.Budget), tea.WithOutput(os.Stderr))
	opts.Progress = func(frames, candidates int, elapsed time.Duration) {
		prog.Send(solveProgressMsg{frames: frames, candidates: candidates, elapsed: elapsed})
	}

	results := make(chan solveDoneMsg, 1)
	go func() {
		result, err := runner.Execute(ctx, opts)
		msg := solveDoneMsg{result: result, err: err}
		results <- msg
		prog.Send(msg)
	}()

	final, err := prog.Run()
	if m, ok := final.(solveModel); ok && m.cancelled {
		cancel()
	}
	if err != nil {
		cancel()
	}

	msg := <-results
	return msg.result, msg.err
}
