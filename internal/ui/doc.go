// Package ui renders the upload workflow as a Bubble Tea application.
//
// The Model is a thin shell around flow.Machine: key presses become
// workflow events, launch commands returned by the machine become tea.Cmd
// closures that call the workshop session and feed the result back as a
// message, and View renders whichever workflow state is live. All workflow
// decisions live in the flow package; this package only translates.
package ui
