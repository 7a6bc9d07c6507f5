// Package app provides the orchestration layer for the workshop uploader.
//
// # Overview
//
// This package wires together configuration, preferences, the workshop
// backend, the callback dispatcher, and the UI. It is the composition root
// where all dependencies are initialized and connected.
//
// # Initialization order
//
//  1. Load uploader configuration from ~/.config/awsw-workshop-uploader/config.toml
//  2. Load user preferences (theme, remembered form paths)
//  3. Resolve the application id: flag override > config app_id > embedded asset
//  4. Pick the workshop backend (injected native client, or the simulator)
//  5. Open a workshop session, which starts the callback dispatcher
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Foreign-app confirmation
//
// Lookups of items that belong to a different application need a yes/no
// decision mid-operation. The app resolves it from the allow_foreign_app
// config field rather than a dialog, since the decision point sits inside
// a blocking call that the full-screen TUI cannot interrupt.
package app
