package workshop

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/dispatch"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/item"
)

const (
	// cacheFreshnessSeconds bounds how stale a cached lookup response may
	// be before the platform must refetch.
	cacheFreshnessSeconds = 360

	legalAgreementURL = "https://steamcommunity.com/sharedfiles/workshoplegalagreement"
	itemPageURLFormat = "steam://url/CommunityFilePage/%d"
)

// Uploader is the operation surface the UI drives. Implemented by *Session
// and by test fakes.
type Uploader interface {
	LookupItem(ctx context.Context, id ItemID) (ItemSummary, error)
	CreateItem(ctx context.Context) (CreateResult, error)
	SubmitContent(ctx context.Context, id ItemID, info item.Info) (SubmitResult, error)
	OpenTerms()
	OpenItemPage(id ItemID)
}

// Ensure Session implements Uploader at compile time.
var _ Uploader = (*Session)(nil)

// Session wraps the native API with the dispatcher bookkeeping every
// asynchronous call needs. One session owns one dispatcher; Close retires
// the dispatcher once the last pending call resolves.
type Session struct {
	api        API
	dispatcher *dispatch.Dispatcher
	confirm    Confirmer
	fs         afero.Fs
}

// NewSession starts a dispatcher for api's pump and binds it to a session.
// confirm resolves foreign-app warnings during lookups; fs is consulted for
// the optional preview file at submission time.
func NewSession(api API, confirm Confirmer, fs afero.Fs) *Session {
	return &Session{
		api:        api,
		dispatcher: dispatch.Start(api.RunCallbacks),
		confirm:    confirm,
		fs:         fs,
	}
}

// Close releases the session's dispatcher reference. Safe to call while
// operations are pending; the dispatcher keeps pumping until they resolve.
func (s *Session) Close() {
	s.dispatcher.Close()
}

// LookupItem fetches metadata for id. Cached platform responses are
// accepted when fresh enough; heavyweight payload sections are excluded.
// Items that are not community files yield ErrNoMatch, and items that
// appear to belong to another application require user confirmation;
// declining yields dispatch.ErrCancelled.
func (s *Session) LookupItem(ctx context.Context, id ItemID) (ItemSummary, error) {
	type outcome struct {
		summary ItemSummary
		err     error
	}

	guard := s.dispatcher.Acquire()
	tx, rx := dispatch.NewResult[outcome]()

	s.api.QueryItem(id, QueryOptions{
		AllowCachedSeconds:        cacheFreshnessSeconds,
		IncludeLongDescription:    false,
		IncludeChildren:           false,
		IncludeMetadata:           false,
		IncludeAdditionalPreviews: false,
	}, func(summary ItemSummary, err error) {
		tx.Send(outcome{summary: summary, err: err})
		guard.Release()
	})

	out, err := rx.Await(ctx)
	if err != nil {
		return ItemSummary{}, err
	}
	if out.err != nil {
		return ItemSummary{}, fmt.Errorf("query item %d: %w", id, out.err)
	}

	if out.summary.FileType != FileTypeCommunity {
		return ItemSummary{}, ErrNoMatch
	}
	if !out.summary.KnownConsumerApp || out.summary.ConsumerAppID != s.api.AppID() {
		prompt := fmt.Sprintf(
			"Found item\n\t%q\nappears to be for a different app than this uploader works with.\nYou may be blocked from uploading. Continue?",
			out.summary.Title)
		if !s.confirm.Confirm(prompt) {
			return ItemSummary{}, dispatch.ErrCancelled
		}
	}
	return out.summary, nil
}

// CreateItem allocates a fresh community item id for the session's app.
func (s *Session) CreateItem(ctx context.Context) (CreateResult, error) {
	type outcome struct {
		result CreateResult
		err    error
	}

	guard := s.dispatcher.Acquire()
	tx, rx := dispatch.NewResult[outcome]()

	s.api.CreateItem(s.api.AppID(), func(result CreateResult, err error) {
		tx.Send(outcome{result: result, err: err})
		guard.Release()
	})

	out, err := rx.Await(ctx)
	if err != nil {
		return CreateResult{}, err
	}
	if out.err != nil {
		return CreateResult{}, fmt.Errorf("create item: %w", out.err)
	}
	return out.result, nil
}

// SubmitContent runs one update transaction against id: title and content
// path always, the preview image only when it is an existing file, and
// change notes only when non-empty.
func (s *Session) SubmitContent(ctx context.Context, id ItemID, info item.Info) (SubmitResult, error) {
	type outcome struct {
		result SubmitResult
		err    error
	}

	req := UpdateRequest{
		Title:       info.Name,
		ContentPath: info.TargetFolder,
	}
	if info.PreviewImage != "" {
		if stat, err := s.fs.Stat(info.PreviewImage); err == nil && !stat.IsDir() {
			req.PreviewImage = info.PreviewImage
		}
	}
	if info.ChangeNotes != "" {
		req.ChangeNotes = info.ChangeNotes
	}

	guard := s.dispatcher.Acquire()
	tx, rx := dispatch.NewResult[outcome]()

	s.api.SubmitUpdate(s.api.AppID(), id, req, func(result SubmitResult, err error) {
		tx.Send(outcome{result: result, err: err})
		guard.Release()
	})

	out, err := rx.Await(ctx)
	if err != nil {
		return SubmitResult{}, err
	}
	if out.err != nil {
		return SubmitResult{}, fmt.Errorf("submit item %d: %w", id, out.err)
	}
	return out.result, nil
}

// OpenTerms shows the platform's workshop legal agreement.
func (s *Session) OpenTerms() {
	s.api.OpenURL(legalAgreementURL)
}

// OpenItemPage shows the community page for a published item.
func (s *Session) OpenItemPage(id ItemID) {
	s.api.OpenURL(fmt.Sprintf(itemPageURLFormat, id))
}
