package flow

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/item"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/workshop"
)

// Validator turns a draft into a validated payload or a display message.
type Validator func(item.Draft) (item.Info, error)

// Machine sequences the upload workflow. It owns the current State and
// interprets Events against it; any required side effect is returned as a
// Command for the caller to run. At most one async operation is ever
// described at a time: a launch command is only produced together with the
// transition into the state that waits for it.
type Machine struct {
	state    State
	validate Validator
	logf     func(format string, args ...any)
}

// New builds a machine in Entry("") using validate for draft checks.
func New(validate Validator) *Machine {
	return &Machine{
		state:    Entry{},
		validate: validate,
		logf:     log.Printf,
	}
}

// SetLogf redirects the machine's anomaly log. Intended for tests.
func (m *Machine) SetLogf(logf func(format string, args ...any)) {
	m.logf = logf
}

// State returns the live workflow state.
func (m *Machine) State() State {
	return m.state
}

// Handle applies one event. The returned command, when non-nil, must be
// executed by the caller. A non-nil error is an inline validation message:
// the state did not change and nothing was launched.
func (m *Machine) Handle(event Event) (Command, error) {
	// The terms link works the same everywhere and never transitions.
	if _, ok := event.(TermsLinkPressed); ok {
		return OpenTerms{}, nil
	}

	next, cmd, err := m.apply(event)
	if err != nil {
		return nil, err
	}
	m.state = next
	return cmd, nil
}

// apply is the transition table: one function per state, pure in
// (state, event) apart from the injected draft validator.
func (m *Machine) apply(event Event) (State, Command, error) {
	switch state := m.state.(type) {
	case Entry:
		return m.applyEntry(state, event)
	case Searching:
		return m.applySearching(state, event)
	case Editing:
		return m.applyEditing(state, event)
	case Creating:
		return m.applyCreating(state, event)
	case CreateFailed:
		return m.applyCreateFailed(state, event)
	case Submitting:
		return m.applySubmitting(state, event)
	case SubmitFailed:
		return m.applySubmitFailed(state, event)
	case Done:
		return m.applyDone(state, event)
	default:
		return m.state, nil, nil
	}
}

func (m *Machine) applyEntry(state Entry, event Event) (State, Command, error) {
	switch event := event.(type) {
	case SetID:
		return Entry{IDText: event.Text}, nil, nil
	case Proceed:
		if state.IDText == "" {
			return Editing{}, nil, nil
		}
		id, err := ParseItemID(state.IDText)
		if err != nil {
			return state, nil, err
		}
		return Searching{ID: id}, LookupItem{ID: id}, nil
	}
	return state, nil, nil
}

func (m *Machine) applySearching(state Searching, event Event) (State, Command, error) {
	switch event := event.(type) {
	case ItemFound:
		id := state.ID
		return Editing{
			ExistingID: &id,
			Draft:      item.Draft{Name: event.Summary.Title},
		}, nil, nil
	case OpFailed:
		return Searching{ID: state.ID, Err: event.Err}, nil, nil
	case GoBack:
		return Entry{IDText: strconv.FormatUint(uint64(state.ID), 10)}, nil, nil
	}
	return state, nil, nil
}

func (m *Machine) applyEditing(state Editing, event Event) (State, Command, error) {
	switch event := event.(type) {
	case EditField:
		draft := state.Draft
		switch event.Field {
		case FieldName:
			draft.Name = event.Value
		case FieldPreviewImage:
			draft.PreviewImage = event.Value
		case FieldTargetFolder:
			draft.TargetFolder = event.Value
		case FieldChangeNotes:
			draft.ChangeNotes = event.Value
		}
		return Editing{ExistingID: state.ExistingID, Draft: draft}, nil, nil
	case Proceed:
		info, err := m.validate(state.Draft)
		if err != nil {
			return state, nil, err
		}
		if state.ExistingID != nil {
			id := *state.ExistingID
			return Submitting{ID: id, Info: info}, SubmitContent{ID: id, Info: info}, nil
		}
		return Creating{Info: info}, CreateItem{}, nil
	case GoBack:
		text := ""
		if state.ExistingID != nil {
			text = strconv.FormatUint(uint64(*state.ExistingID), 10)
		}
		return Entry{IDText: text}, nil, nil
	}
	return state, nil, nil
}

func (m *Machine) applyCreating(state Creating, event Event) (State, Command, error) {
	switch event := event.(type) {
	case IDReceived:
		return Submitting{ID: event.ID, Info: state.Info},
			SubmitContent{ID: event.ID, Info: state.Info}, nil
	case OpFailed:
		return CreateFailed{Info: state.Info, Err: event.Err}, nil, nil
	}
	return state, nil, nil
}

func (m *Machine) applyCreateFailed(state CreateFailed, event Event) (State, Command, error) {
	if _, ok := event.(GoBack); ok {
		return Editing{Draft: state.Info.Draft()}, nil, nil
	}
	return state, nil, nil
}

func (m *Machine) applySubmitting(state Submitting, event Event) (State, Command, error) {
	switch event := event.(type) {
	case IDReceived:
		if event.ID != state.ID {
			// The platform echoed a different item than we submitted.
			// Observed nowhere in practice; log and hold position.
			m.logf("not advancing on mismatched ids: submitted %d, platform echoed %d",
				state.ID, event.ID)
			return state, nil, nil
		}
		return Done{ID: state.ID}, nil, nil
	case OpFailed:
		return SubmitFailed{ID: state.ID, Info: state.Info, Err: event.Err}, nil, nil
	}
	return state, nil, nil
}

func (m *Machine) applySubmitFailed(state SubmitFailed, event Event) (State, Command, error) {
	if _, ok := event.(GoBack); ok {
		id := state.ID
		return Editing{ExistingID: &id, Draft: state.Info.Draft()}, nil, nil
	}
	return state, nil, nil
}

func (m *Machine) applyDone(state Done, event Event) (State, Command, error) {
	switch event.(type) {
	case Proceed:
		return state, OpenItemPage{ID: state.ID}, nil
	case GoBack:
		return Entry{}, nil, nil
	}
	return state, nil, nil
}

// ParseItemID parses the entry screen's id text. The empty string is not an
// id; callers branch on that before parsing.
func ParseItemID(text string) (workshop.ItemID, error) {
	id, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, fmt.Errorf("Invalid item ID: %v.", numErr.Err)
		}
		return 0, fmt.Errorf("Invalid item ID: %v.", err)
	}
	return workshop.ItemID(id), nil
}
