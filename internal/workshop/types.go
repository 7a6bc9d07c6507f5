package workshop

import "errors"

// AppID identifies the application that workshop items belong to.
type AppID uint32

// ItemID identifies a published workshop item.
type ItemID uint64

// FileType classifies a workshop entry. Only community items are uploadable
// through this tool.
type FileType int

const (
	FileTypeCommunity FileType = iota
	FileTypeMicrotransaction
	FileTypeCollection
	FileTypeArt
	FileTypeVideo
	FileTypeScreenshot
	FileTypeGuide
	FileTypeMerch
)

// ItemSummary is the metadata returned by an item lookup. ConsumerAppID is
// only meaningful when KnownConsumerApp is set; the platform omits it for
// some legacy entries.
type ItemSummary struct {
	ID               ItemID
	Title            string
	FileType         FileType
	ConsumerAppID    AppID
	KnownConsumerApp bool
}

// QueryOptions trims an item lookup down to the fields the uploader needs.
type QueryOptions struct {
	// AllowCachedSeconds lets the platform answer from cache when the entry
	// is at most this many seconds old.
	AllowCachedSeconds        uint32
	IncludeLongDescription    bool
	IncludeChildren           bool
	IncludeMetadata           bool
	IncludeAdditionalPreviews bool
}

// UpdateRequest describes one content submission transaction. Empty
// PreviewImage or ChangeNotes mean the corresponding field is left unset.
type UpdateRequest struct {
	Title        string
	ContentPath  string
	PreviewImage string
	ChangeNotes  string
}

// CreateResult is delivered by the backend when a new item id is allocated.
// AgreementRequired flags that the user still has to accept the platform's
// workshop terms; surfacing that is the caller's job.
type CreateResult struct {
	ID                ItemID
	AgreementRequired bool
}

// SubmitResult is delivered when a content submission finishes. ID echoes
// the item the backend believes it updated.
type SubmitResult struct {
	ID                ItemID
	AgreementRequired bool
}

// ErrNoMatch is returned by LookupItem when no uploadable community item
// exists under the requested id.
var ErrNoMatch = errors.New("no matching workshop item")

// API is the callback-driven native SDK boundary. Results are delivered by
// invoking the registered callback from within a RunCallbacks call; nothing
// is delivered unless RunCallbacks is pumped.
type API interface {
	// AppID reports the application this client was initialized for.
	AppID() AppID

	// RunCallbacks dispatches any ready results to their registered
	// callbacks. It must be invoked on a fixed cadence while any call is
	// outstanding; the dispatch package owns that loop.
	RunCallbacks()

	// QueryItem looks up one item and invokes fn exactly once.
	QueryItem(id ItemID, opts QueryOptions, fn func(ItemSummary, error))

	// CreateItem allocates a new community item id for app and invokes fn
	// exactly once.
	CreateItem(app AppID, fn func(CreateResult, error))

	// SubmitUpdate runs one content update transaction against id and
	// invokes fn exactly once.
	SubmitUpdate(app AppID, id ItemID, req UpdateRequest, fn func(SubmitResult, error))

	// OpenURL shows url through the platform's overlay or browser.
	OpenURL(url string)
}

// Confirmer collects a yes/no decision from the user. Implementations live
// outside the session; lookups block on it when a found item appears to
// belong to a different application.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
