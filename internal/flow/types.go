package flow

import (
	"github.com/4onen/AwSW-Workshop-Uploader/internal/item"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/workshop"
)

// State is the workflow's tagged union. Exactly one state is live at a
// time; every transition replaces the whole value.
type State interface{ isState() }

// Entry is the initial screen: the user types an existing item id, or
// leaves it empty to create a new item.
type Entry struct {
	IDText string
}

// Searching waits for an item lookup to resolve. Err holds the last lookup
// failure for this id, if any.
type Searching struct {
	ID  workshop.ItemID
	Err error
}

// Editing is the form screen. ExistingID is nil when a brand-new item is
// being prepared.
type Editing struct {
	ExistingID *workshop.ItemID
	Draft      item.Draft
}

// Creating waits for a new item id to be allocated for Info.
type Creating struct {
	Info item.Info
}

// CreateFailed is the terminal state of a failed creation attempt until
// the user navigates back.
type CreateFailed struct {
	Info item.Info
	Err  error
}

// Submitting waits for a content submission against ID to resolve.
type Submitting struct {
	ID   workshop.ItemID
	Info item.Info
}

// SubmitFailed is the terminal state of a failed submission attempt until
// the user navigates back. The item exists under ID; only its content is
// missing.
type SubmitFailed struct {
	ID   workshop.ItemID
	Info item.Info
	Err  error
}

// Done reports a completed upload of ID.
type Done struct {
	ID workshop.ItemID
}

func (Entry) isState()        {}
func (Searching) isState()    {}
func (Editing) isState()      {}
func (Creating) isState()     {}
func (CreateFailed) isState() {}
func (Submitting) isState()   {}
func (SubmitFailed) isState() {}
func (Done) isState()         {}

// Field names one editable slot of the upload form.
type Field int

const (
	FieldName Field = iota
	FieldPreviewImage
	FieldTargetFolder
	FieldChangeNotes
)

// Event is a workflow input: a user action or a delivered async result.
type Event interface{ isEvent() }

// SetID replaces the id text on the entry screen.
type SetID struct {
	Text string
}

// EditField replaces one form field's value while editing.
type EditField struct {
	Field Field
	Value string
}

// Proceed advances the workflow from the current state.
type Proceed struct{}

// GoBack navigates to the previous editable state, preserving user input.
type GoBack struct{}

// TermsLinkPressed opens the workshop terms. Handled identically in every
// state and never transitions.
type TermsLinkPressed struct{}

// ItemFound delivers a successful lookup result.
type ItemFound struct {
	Summary workshop.ItemSummary
}

// IDReceived delivers a successful create or submit result.
type IDReceived struct {
	ID workshop.ItemID
}

// OpFailed delivers a failed async operation's error.
type OpFailed struct {
	Err error
}

func (SetID) isEvent()            {}
func (EditField) isEvent()        {}
func (Proceed) isEvent()          {}
func (GoBack) isEvent()           {}
func (TermsLinkPressed) isEvent() {}
func (ItemFound) isEvent()        {}
func (IDReceived) isEvent()       {}
func (OpFailed) isEvent()         {}

// Command describes a side effect the caller must run after a transition.
// The machine never performs effects itself.
type Command interface{ isCommand() }

// LookupItem asks the caller to start an item lookup.
type LookupItem struct {
	ID workshop.ItemID
}

// CreateItem asks the caller to request a new item id.
type CreateItem struct{}

// SubmitContent asks the caller to start a content submission.
type SubmitContent struct {
	ID   workshop.ItemID
	Info item.Info
}

// OpenItemPage asks the caller to show the published item's page.
type OpenItemPage struct {
	ID workshop.ItemID
}

// OpenTerms asks the caller to show the workshop terms of service.
type OpenTerms struct{}

func (LookupItem) isCommand()    {}
func (CreateItem) isCommand()    {}
func (SubmitContent) isCommand() {}
func (OpenItemPage) isCommand()  {}
func (OpenTerms) isCommand()     {}
