package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/flow"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/item"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/prefs"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/workshop"
)

// formFieldCount is the number of editable inputs on the item form, in
// flow.Field order.
const formFieldCount = 4

// Options configures the UI.
type Options struct {
	Context   context.Context
	Uploader  workshop.Uploader
	Validate  flow.Validator
	ThemeName string
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea. It owns the workflow
// machine and translates between terminal input, workflow events, and the
// async operations the machine asks for.
type Model struct {
	ctx      context.Context
	uploader workshop.Uploader
	machine  *flow.Machine
	validate flow.Validator

	theme  Theme
	styles Styles

	idInput    textinput.Model
	formInputs [formFieldCount]textinput.Model
	focusIdx   int
	spin       spinner.Model

	// notice is the inline validation message from the last rejected
	// proceed; cleared by any accepted event.
	notice string

	// agreementPending is set when the platform reported that the workshop
	// terms still need accepting.
	agreementPending bool

	prefsData prefs.Prefs
	prefsPath string
	prefilled bool

	width  int
	height int
}

// New creates the Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := themeByName(opts.ThemeName)

	idInput := textinput.New()
	idInput.Placeholder = "Existing item ID"
	idInput.CharLimit = 20
	idInput.Width = 30
	idInput.Focus()

	var formInputs [formFieldCount]textinput.Model
	placeholders := [formFieldCount]string{"Name", "Optional", "", ""}
	for i := range formInputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.Width = 40
		formInputs[i] = input
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:        ctx,
		uploader:   opts.Uploader,
		machine:    flow.New(opts.Validate),
		validate:   opts.Validate,
		theme:      theme,
		styles:     theme.Styles(),
		idInput:    idInput,
		formInputs: formInputs,
		spin:       spin,
		prefsData:  opts.Prefs,
		prefsPath:  opts.PrefsPath,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case lookupResultMsg:
		return m, m.dispatch(msg.event())

	case idResultMsg:
		if msg.err == nil && msg.agreementRequired {
			m.agreementPending = true
		}
		wasSubmitting, info := m.submittingInfo()
		cmd := m.dispatch(msg.event())
		if wasSubmitting {
			if _, done := m.machine.State().(flow.Done); done {
				m.rememberPaths(info)
			}
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+t":
		return m, m.dispatch(flow.TermsLinkPressed{})
	}

	switch m.machine.State().(type) {
	case flow.Entry:
		return m.handleEntryKey(msg)
	case flow.Editing:
		return m.handleEditingKey(msg)
	case flow.Done:
		switch msg.String() {
		case "enter":
			return m, m.dispatch(flow.Proceed{})
		case "esc":
			return m, m.dispatch(flow.GoBack{})
		}
	default:
		// Waiting and error states only offer back-navigation.
		if msg.String() == "esc" {
			return m, m.dispatch(flow.GoBack{})
		}
	}
	return m, nil
}

func (m Model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m, m.dispatch(flow.Proceed{})
	}

	var inputCmd tea.Cmd
	m.idInput, inputCmd = m.idInput.Update(msg)
	dispatchCmd := m.dispatch(flow.SetID{Text: m.idInput.Value()})
	return m, tea.Batch(inputCmd, dispatchCmd)
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.dispatch(flow.Proceed{})
	case "esc":
		return m, m.dispatch(flow.GoBack{})
	case "tab":
		m.setFocus((m.focusIdx + 1) % formFieldCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focusIdx + formFieldCount - 1) % formFieldCount)
		return m, nil
	}

	var inputCmd tea.Cmd
	m.formInputs[m.focusIdx], inputCmd = m.formInputs[m.focusIdx].Update(msg)
	dispatchCmd := m.dispatch(flow.EditField{
		Field: flow.Field(m.focusIdx),
		Value: m.formInputs[m.focusIdx].Value(),
	})
	return m, tea.Batch(inputCmd, dispatchCmd)
}

// dispatch feeds one event to the workflow machine, mirrors the resulting
// state into the inputs, and turns any launch command into a tea.Cmd.
func (m *Model) dispatch(event flow.Event) tea.Cmd {
	cmd, err := m.machine.Handle(event)
	if err != nil {
		m.notice = err.Error()
		return nil
	}
	m.notice = ""
	m.prefillIfBlank()
	m.syncInputs()
	return m.runCommand(cmd)
}

// prefillIfBlank seeds a brand-new item form with the remembered preview
// and target paths, once per run.
func (m *Model) prefillIfBlank() {
	editing, ok := m.machine.State().(flow.Editing)
	if !ok || m.prefilled || editing.ExistingID != nil || editing.Draft != (item.Draft{}) {
		return
	}
	m.prefilled = true
	if m.prefsData.LastPreviewImage != "" {
		m.machine.Handle(flow.EditField{Field: flow.FieldPreviewImage, Value: m.prefsData.LastPreviewImage})
	}
	if m.prefsData.LastTargetFolder != "" {
		m.machine.Handle(flow.EditField{Field: flow.FieldTargetFolder, Value: m.prefsData.LastTargetFolder})
	}
}

// syncInputs mirrors the machine's state into the text inputs after a
// transition; lookups and go-back edges rewrite field contents outside the
// usual keystroke path.
func (m *Model) syncInputs() {
	switch state := m.machine.State().(type) {
	case flow.Entry:
		if m.idInput.Value() != state.IDText {
			m.idInput.SetValue(state.IDText)
			m.idInput.CursorEnd()
		}
		m.idInput.Focus()
	case flow.Editing:
		values := [formFieldCount]string{
			state.Draft.Name,
			state.Draft.PreviewImage,
			state.Draft.TargetFolder,
			state.Draft.ChangeNotes,
		}
		for i := range m.formInputs {
			if m.formInputs[i].Value() != values[i] {
				m.formInputs[i].SetValue(values[i])
				m.formInputs[i].CursorEnd()
			}
		}
		m.setFocus(m.focusIdx)
	}
}

func (m *Model) setFocus(idx int) {
	m.focusIdx = idx
	for i := range m.formInputs {
		if i == idx {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m *Model) runCommand(cmd flow.Command) tea.Cmd {
	switch cmd := cmd.(type) {
	case flow.LookupItem:
		return lookupCmd(m.ctx, m.uploader, cmd.ID)
	case flow.CreateItem:
		return createCmd(m.ctx, m.uploader)
	case flow.SubmitContent:
		return submitCmd(m.ctx, m.uploader, cmd.ID, cmd.Info)
	case flow.OpenItemPage:
		m.uploader.OpenItemPage(cmd.ID)
		return nil
	case flow.OpenTerms:
		m.uploader.OpenTerms()
		return nil
	}
	return nil
}

// submittingInfo captures the in-flight payload before a submit result is
// applied, so a successful upload can update the remembered paths.
func (m Model) submittingInfo() (bool, item.Info) {
	if submitting, ok := m.machine.State().(flow.Submitting); ok {
		return true, submitting.Info
	}
	return false, item.Info{}
}

func (m *Model) rememberPaths(info item.Info) {
	m.prefsData.Theme = m.theme.Name
	m.prefsData.LastPreviewImage = info.PreviewImage
	m.prefsData.LastTargetFolder = info.TargetFolder
	if err := prefs.Save(m.prefsPath, m.prefsData); err != nil {
		// Remembered paths are a convenience; losing them is not worth
		// interrupting a completed upload.
		m.notice = fmt.Sprintf("Could not save preferences: %v", err)
	}
}

// Run starts the UI and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	if opts.Uploader == nil {
		return fmt.Errorf("ui requires an uploader")
	}
	if opts.Validate == nil {
		return fmt.Errorf("ui requires a draft validator")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := program.Run()
	return err
}

// Ensure Model implements tea.Model at compile time.
var _ tea.Model = Model{}
