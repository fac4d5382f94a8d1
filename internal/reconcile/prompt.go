package reconcile

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	fieldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	expectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	actualStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// HuhPrompter renders the diff for a drifted issue and asks the operator to
// apply, skip, or quit via an interactive select.
type HuhPrompter struct {
	out io.Writer
}

// NewHuhPrompter constructs a prompter writing to stdout.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{out: os.Stdout}
}

func (p *HuhPrompter) Decide(item Item) (Decision, error) {
	fmt.Fprintln(p.out, headerStyle.Render(fmt.Sprintf("%s (%s)", item.OrderID, item.Identifier)))
	for _, field := range item.Fields {
		fmt.Fprintln(p.out, "  "+fieldStyle.Render(field.Name))
		fmt.Fprintln(p.out, "    tracker:  "+actualStyle.Render(field.Actual))
		fmt.Fprintln(p.out, "    expected: "+expectedStyle.Render(field.Expected))
	}

	decision := DecisionSkip
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[Decision]().
			Title("Apply this fix?").
			Options(
				huh.NewOption("Apply", DecisionApply),
				huh.NewOption("Skip", DecisionSkip),
				huh.NewOption("Quit", DecisionQuit),
			).
			Value(&decision),
	))
	if err := form.Run(); err != nil {
		return DecisionQuit, err
	}
	return decision, nil
}
