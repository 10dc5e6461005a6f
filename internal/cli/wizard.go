package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/epcrisk/internal/cli/formatter"
	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errWizardCancelled = errors.New("cancelled")

// epcriskHuhTheme styles huh forms with the formatter palette.
func epcriskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardKeyMap adds esc as a cancel key alongside ctrl+c.
func wizardKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

// runForm runs a form on the command's streams. Aborting the form returns
// errWizardCancelled.
func runForm(cmd *cobra.Command, form *huh.Form) error {
	err := form.
		WithTheme(epcriskHuhTheme()).
		WithKeyMap(wizardKeyMap()).
		WithProgramOptions(
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.ErrOrStderr()),
		).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errWizardCancelled
	}
	return err
}

// milestoneAnswers holds the raw text a milestone wizard collects.
type milestoneAnswers struct {
	Name    string
	Budget  string
	Start   string
	Due     string
	Trigger string
	Phases  string
}

func milestoneForm(a *milestoneAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Milestone Name").
				Value(&a.Name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Planned Budget").
				Placeholder("100000").
				Value(&a.Budget).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Phases").
				Placeholder("1").
				Value(&a.Phases).
				Validate(validateOptionalPositiveInt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Placeholder("2025-01-06").
				Value(&a.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD)").
				Placeholder("2025-04-16").
				Value(&a.Due).
				Validate(validateDate),
			huh.NewInput().
				Title("Payment Trigger (YYYY-MM-DD, blank for due date)").
				Value(&a.Trigger).
				Validate(validateOptionalDate),
		),
	).WithShowHelp(true)
}

// spendAnswers holds the raw text a spend wizard collects.
type spendAnswers struct {
	Wages     string
	Materials string
	Machinery string
	Notes     string
}

func spendForm(a *spendAnswers, milestone string, date time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Spend for %s", milestone)).
				Description("on " + date.Format(dateLayout)),
			huh.NewInput().
				Title("Wages").
				Placeholder("0").
				Value(&a.Wages).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Materials").
				Placeholder("0").
				Value(&a.Materials).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Machinery").
				Placeholder("0").
				Value(&a.Machinery).
				Validate(validateNonNegativeFloat),
			huh.NewText().
				Title("Notes").
				Value(&a.Notes),
		),
	).WithShowHelp(true)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("date is required")
	}
	_, err := parseDate(s, nil)
	return err
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

func validatePositiveFloat(s string) error {
	v, err := parseAmount(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

// validateNonNegativeFloat accepts blank as zero.
func validateNonNegativeFloat(s string) error {
	v, err := parseAmount(s)
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or a positive number")
	}
	return nil
}

func validateOptionalPositiveInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive whole number")
	}
	return nil
}

// parseAmount parses a money amount; blank is zero. NaN and infinities are
// rejected.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if !domain.IsFinite(v) {
		return 0, fmt.Errorf("amount %q must be a finite number", s)
	}
	return v, nil
}
