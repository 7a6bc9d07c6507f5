// Package config handles loading the uploader's TOML configuration.
//
// The Load function reads ~/.config/awsw-workshop-uploader/config.toml (or
// an explicit path) and falls back to zero-value defaults when the file
// does not exist. Recognized fields:
//
//	app_id = 571880          # overrides the embedded application id
//	allow_foreign_app = true # continue lookups of items from other apps
//
// A present-but-unparsable file is an error; a missing file is not.
package config
