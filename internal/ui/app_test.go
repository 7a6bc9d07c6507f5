package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/flow"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/item"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/prefs"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/workshop"
)

// fakeUploader satisfies workshop.Uploader with canned responses.
type fakeUploader struct {
	lookupSummary workshop.ItemSummary
	lookupErr     error
	createResult  workshop.CreateResult
	submitResult  workshop.SubmitResult
	openedURLs    int
}

func (f *fakeUploader) LookupItem(context.Context, workshop.ItemID) (workshop.ItemSummary, error) {
	return f.lookupSummary, f.lookupErr
}

func (f *fakeUploader) CreateItem(context.Context) (workshop.CreateResult, error) {
	return f.createResult, nil
}

func (f *fakeUploader) SubmitContent(_ context.Context, id workshop.ItemID, _ item.Info) (workshop.SubmitResult, error) {
	result := f.submitResult
	if result.ID == 0 {
		result.ID = id
	}
	return result, nil
}

func (f *fakeUploader) OpenTerms() { f.openedURLs++ }

func (f *fakeUploader) OpenItemPage(workshop.ItemID) { f.openedURLs++ }

func permissiveValidate(d item.Draft) (item.Info, error) {
	if d.Name == "" {
		return item.Info{}, errors.New("Name cannot be empty.")
	}
	return item.Info(d), nil
}

func newTestModel(t *testing.T, up workshop.Uploader) Model {
	t.Helper()
	m := New(Options{
		Uploader:  up,
		Validate:  permissiveValidate,
		PrefsPath: t.TempDir() + "/prefs.toml",
	})
	m.machine.SetLogf(t.Logf)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func keyMsg(s string) tea.Msg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_EntryToSearchingLaunchesLookup(t *testing.T) {
	up := &fakeUploader{
		lookupSummary: workshop.ItemSummary{ID: 42, Title: "Existing"},
	}
	m := newTestModel(t, up)

	for _, r := range "42" {
		m, _ = update(t, m, keyMsg(string(r)))
	}
	m, cmd := update(t, m, keyMsg("enter"))

	if _, ok := m.machine.State().(flow.Searching); !ok {
		t.Fatalf("state = %#v, want Searching", m.machine.State())
	}
	if cmd == nil {
		t.Fatalf("no command launched for the lookup")
	}

	// Running the command yields the lookup result; feeding it back lands
	// in the editing form with the found title.
	m, _ = update(t, m, cmd())
	editing, ok := m.machine.State().(flow.Editing)
	if !ok {
		t.Fatalf("state = %#v, want Editing", m.machine.State())
	}
	if editing.Draft.Name != "Existing" {
		t.Fatalf("draft name = %q, want %q", editing.Draft.Name, "Existing")
	}
	if got := m.formInputs[0].Value(); got != "Existing" {
		t.Fatalf("name input = %q, want %q", got, "Existing")
	}
}

func TestModel_InvalidIDShowsNoticeWithoutTransition(t *testing.T) {
	m := newTestModel(t, &fakeUploader{})

	for _, r := range "12x" {
		m, _ = update(t, m, keyMsg(string(r)))
	}
	m, cmd := update(t, m, keyMsg("enter"))

	if _, ok := m.machine.State().(flow.Entry); !ok {
		t.Fatalf("state = %#v, want Entry", m.machine.State())
	}
	if cmd != nil {
		t.Fatalf("command launched for invalid id")
	}
	if !strings.Contains(m.View(), "Invalid item ID") {
		t.Fatalf("view does not surface the validation notice:\n%s", m.View())
	}
}

func TestModel_BlankEntryProceedsToNewItemForm(t *testing.T) {
	m := newTestModel(t, &fakeUploader{})

	m, cmd := update(t, m, keyMsg("enter"))
	if cmd != nil {
		t.Fatalf("command launched for blank entry proceed")
	}
	editing, ok := m.machine.State().(flow.Editing)
	if !ok {
		t.Fatalf("state = %#v, want Editing", m.machine.State())
	}
	if editing.ExistingID != nil {
		t.Fatalf("ExistingID = %v, want nil", *editing.ExistingID)
	}
}

func TestModel_PrefsPrefillNewItemForm(t *testing.T) {
	m := New(Options{
		Uploader: &fakeUploader{},
		Validate: permissiveValidate,
		Prefs:    prefs.Prefs{LastPreviewImage: "/p.png", LastTargetFolder: "/mods"},
	})

	m, _ = update(t, m, keyMsg("enter"))
	editing, ok := m.machine.State().(flow.Editing)
	if !ok {
		t.Fatalf("state = %#v, want Editing", m.machine.State())
	}
	if editing.Draft.PreviewImage != "/p.png" || editing.Draft.TargetFolder != "/mods" {
		t.Fatalf("draft = %#v, want remembered paths", editing.Draft)
	}
}

func TestModel_CreateChainThroughSubmitToDone(t *testing.T) {
	up := &fakeUploader{
		createResult: workshop.CreateResult{ID: 777, AgreementRequired: true},
	}
	m := newTestModel(t, up)

	m, _ = update(t, m, keyMsg("enter")) // blank entry -> editing
	for _, r := range "My Mod" {
		m, _ = update(t, m, keyMsg(string(r)))
	}

	m, cmd := update(t, m, keyMsg("enter")) // proceed -> creating
	if _, ok := m.machine.State().(flow.Creating); !ok {
		t.Fatalf("state = %#v, want Creating", m.machine.State())
	}
	if cmd == nil {
		t.Fatalf("no command launched for the creation")
	}

	m, cmd = update(t, m, cmd()) // create result -> submitting + submit launch
	if _, ok := m.machine.State().(flow.Submitting); !ok {
		t.Fatalf("state = %#v, want Submitting", m.machine.State())
	}
	if cmd == nil {
		t.Fatalf("no command launched for the submission")
	}
	if !m.agreementPending {
		t.Fatalf("agreementPending = false, want true after flagged create")
	}

	m, _ = update(t, m, cmd()) // submit result -> done
	done, ok := m.machine.State().(flow.Done)
	if !ok {
		t.Fatalf("state = %#v, want Done", m.machine.State())
	}
	if done.ID != 777 {
		t.Fatalf("done id = %d, want 777", done.ID)
	}
}

func TestModel_TermsShortcutOpensTermsEverywhere(t *testing.T) {
	up := &fakeUploader{}
	m := newTestModel(t, up)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if up.openedURLs != 1 {
		t.Fatalf("opened urls = %d, want 1", up.openedURLs)
	}
	if _, ok := m.machine.State().(flow.Entry); !ok {
		t.Fatalf("terms shortcut changed state to %#v", m.machine.State())
	}
}

func TestModel_EscNavigatesBackFromFailure(t *testing.T) {
	up := &fakeUploader{lookupErr: errors.New("file not found")}
	m := newTestModel(t, up)

	m, _ = update(t, m, keyMsg("9"))
	m, cmd := update(t, m, keyMsg("enter"))
	m, _ = update(t, m, cmd())

	searching, ok := m.machine.State().(flow.Searching)
	if !ok || searching.Err == nil {
		t.Fatalf("state = %#v, want Searching with error", m.machine.State())
	}

	m, _ = update(t, m, keyMsg("esc"))
	entry, ok := m.machine.State().(flow.Entry)
	if !ok {
		t.Fatalf("state = %#v, want Entry", m.machine.State())
	}
	if entry.IDText != "9" {
		t.Fatalf("entry text = %q, want %q", entry.IDText, "9")
	}
	if got := m.idInput.Value(); got != "9" {
		t.Fatalf("id input = %q, want %q", got, "9")
	}
}
