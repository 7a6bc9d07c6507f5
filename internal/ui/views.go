package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/flow"
)

const appTitle = "4onen's Steam Workshop Uploader"

var formLabels = [formFieldCount]string{"Name", "Preview Image", "Target Folder", "Changenotes"}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch state := m.machine.State().(type) {
	case flow.Entry:
		body = m.entryView(state)
	case flow.Searching:
		body = m.searchingView(state)
	case flow.Editing:
		body = m.editingView(state)
	case flow.Creating:
		body = m.creatingView(state)
	case flow.CreateFailed:
		body = m.createFailedView(state)
	case flow.Submitting:
		body = m.submittingView(state)
	case flow.SubmitFailed:
		body = m.submitFailedView(state)
	case flow.Done:
		body = m.doneView(state)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m Model) entryView(state flow.Entry) string {
	lines := []string{
		m.styles.Title.Render(appTitle),
		"",
		m.idInput.View(),
		"",
	}
	if state.IDText == "" {
		lines = append(lines, m.styles.Text.Render("Leave empty and press enter to create a new item."))
	} else {
		lines = append(lines, m.styles.Text.Render("Press enter to update the existing item."))
	}
	if m.notice != "" {
		lines = append(lines, m.styles.Danger.Render(m.notice))
	}
	lines = append(lines, m.styles.Help.Render("enter proceed · ctrl+c quit"))
	return strings.Join(lines, "\n")
}

func (m Model) searchingView(state flow.Searching) string {
	if state.Err != nil {
		return strings.Join([]string{
			m.styles.Title.Render(appTitle),
			"",
			m.styles.Danger.Render(fmt.Sprintf("Search for item with ID %d failed.", state.ID)),
			m.styles.Text.Render(fmt.Sprintf("Error: %v", state.Err)),
			m.styles.Help.Render("esc go back · ctrl+c quit"),
		}, "\n")
	}
	return strings.Join([]string{
		m.styles.Title.Render(appTitle),
		"",
		m.spin.View() + m.styles.Text.Render(fmt.Sprintf(" Searching for item with ID %d...", state.ID)),
		m.styles.Help.Render("esc cancel · ctrl+c quit"),
	}, "\n")
}

func (m Model) editingView(state flow.Editing) string {
	var header string
	if state.ExistingID != nil {
		header = fmt.Sprintf("Updating item with ID: %d", *state.ExistingID)
	} else {
		header = "Creating new item:"
	}

	lines := []string{
		m.styles.Title.Render(appTitle),
		"",
		m.styles.Text.Render(header),
		"",
	}
	for i, input := range m.formInputs {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Label.Render(formLabels[i]),
			input.View(),
		))
	}

	lines = append(lines, "",
		m.styles.Muted.Render("By submitting this item, you agree to the Steam workshop"),
		m.styles.Muted.Render("Terms of Service (ctrl+t to open)."),
	)
	if m.agreementPending {
		lines = append(lines, m.styles.Danger.Render(
			"The workshop terms must be accepted before your item becomes visible."))
	}

	action := "create"
	if state.ExistingID != nil {
		action = "update"
	}
	if m.notice != "" {
		lines = append(lines, m.styles.Danger.Render(m.notice))
	} else if _, err := m.validate(state.Draft); err != nil {
		lines = append(lines, m.styles.Danger.Render(err.Error()))
	} else {
		lines = append(lines, m.styles.Success.Render("Ready to "+action+"."))
	}
	lines = append(lines, m.styles.Help.Render(
		"tab next field · enter "+action+" · esc go back · ctrl+c quit"))
	return strings.Join(lines, "\n")
}

func (m Model) creatingView(state flow.Creating) string {
	return strings.Join([]string{
		m.styles.Title.Render(appTitle),
		"",
		m.spin.View() + m.styles.Text.Render(
			fmt.Sprintf(" Creating %q on Steam Workshop...", state.Info.Name)),
	}, "\n")
}

func (m Model) createFailedView(state flow.CreateFailed) string {
	return strings.Join([]string{
		m.styles.Title.Render(appTitle),
		"",
		m.styles.Danger.Render("Error creating a new entry on the workshop:"),
		m.styles.Text.Render(fmt.Sprintf("%v", state.Err)),
		m.styles.Text.Render(fmt.Sprintf("%q was not uploaded.", state.Info.Name)),
		m.styles.Help.Render("esc go back · ctrl+c quit"),
	}, "\n")
}

func (m Model) submittingView(state flow.Submitting) string {
	return strings.Join([]string{
		m.styles.Title.Render(appTitle),
		"",
		m.spin.View() + m.styles.Text.Render(
			fmt.Sprintf(" Sending item %d to Steam Workshop...", state.ID)),
	}, "\n")
}

func (m Model) submitFailedView(state flow.SubmitFailed) string {
	return strings.Join([]string{
		m.styles.Title.Render(appTitle),
		"",
		m.styles.Danger.Render("Error uploading your item to the workshop:"),
		m.styles.Text.Render(fmt.Sprintf("%v", state.Err)),
		m.styles.Text.Render(fmt.Sprintf(
			"%q is created on the workshop with ID %d, but does not have your files in it.",
			state.Info.Name, state.ID)),
		m.styles.Text.Render("Please resolve the issue and try uploading to this existing ID again."),
		m.styles.Help.Render("esc go back · ctrl+c quit"),
	}, "\n")
}

func (m Model) doneView(state flow.Done) string {
	lines := []string{
		m.styles.Title.Render(appTitle),
		"",
		m.styles.Success.Render(fmt.Sprintf("Item ID %d uploaded to workshop.", state.ID)),
	}
	if m.agreementPending {
		lines = append(lines, m.styles.Danger.Render(
			"The workshop terms must be accepted before your item becomes visible (ctrl+t)."))
	}
	lines = append(lines, m.styles.Help.Render("enter go to your item · esc restart · ctrl+c quit"))
	return strings.Join(lines, "\n")
}
