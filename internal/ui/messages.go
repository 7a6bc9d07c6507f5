package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/flow"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/item"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/workshop"
)

// lookupResultMsg delivers the outcome of an item lookup.
type lookupResultMsg struct {
	summary workshop.ItemSummary
	err     error
}

// idResultMsg delivers the outcome of a create or submit call. Both report
// an item id plus whether the workshop terms still need accepting.
type idResultMsg struct {
	id                workshop.ItemID
	agreementRequired bool
	err               error
}

func lookupCmd(ctx context.Context, up workshop.Uploader, id workshop.ItemID) tea.Cmd {
	return func() tea.Msg {
		summary, err := up.LookupItem(ctx, id)
		return lookupResultMsg{summary: summary, err: err}
	}
}

func createCmd(ctx context.Context, up workshop.Uploader) tea.Cmd {
	return func() tea.Msg {
		created, err := up.CreateItem(ctx)
		return idResultMsg{id: created.ID, agreementRequired: created.AgreementRequired, err: err}
	}
}

func submitCmd(ctx context.Context, up workshop.Uploader, id workshop.ItemID, info item.Info) tea.Cmd {
	return func() tea.Msg {
		result, err := up.SubmitContent(ctx, id, info)
		return idResultMsg{id: result.ID, agreementRequired: result.AgreementRequired, err: err}
	}
}

// event translates an async result message into the workflow event the
// machine understands.
func (msg lookupResultMsg) event() flow.Event {
	if msg.err != nil {
		return flow.OpFailed{Err: msg.err}
	}
	return flow.ItemFound{Summary: msg.summary}
}

func (msg idResultMsg) event() flow.Event {
	if msg.err != nil {
		return flow.OpFailed{Err: msg.err}
	}
	return flow.IDReceived{ID: msg.id}
}
