package app

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/afero"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/config"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/item"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/prefs"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/steamsim"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/ui"
	"github.com/4onen/AwSW-Workshop-Uploader/internal/workshop"
)

// Options configure the uploader application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/awsw-workshop-uploader/prefs.toml

	// AppID is the embedded (or flag-overridden) application id. Config
	// app_id takes precedence over the embedded value but not the flag.
	AppID uint32

	// AppIDFromFlag marks AppID as an explicit command-line override.
	AppIDFromFlag bool

	// Backend supplies the native workshop client. Nil falls back to the
	// in-memory simulated backend.
	Backend workshop.API
}

// Run boots the uploader TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	appID := opts.AppID
	if cfg.AppID != 0 && !opts.AppIDFromFlag {
		appID = cfg.AppID
	}
	if appID == 0 {
		return fmt.Errorf("no application id available")
	}

	backend := opts.Backend
	if backend == nil {
		log.Printf("no native workshop client built in; using the simulated backend")
		backend = steamsim.New(workshop.AppID(appID))
	}

	// The foreign-app confirmation is resolved by configured policy; the
	// upload flow blocks on it mid-lookup, which a full-screen TUI cannot
	// interrupt with a dialog.
	confirm := workshop.ConfirmFunc(func(prompt string) bool {
		log.Printf("%s -> allow_foreign_app=%t", prompt, cfg.AllowForeignApp)
		return cfg.AllowForeignApp
	})

	fs := afero.NewOsFs()
	session := workshop.NewSession(backend, confirm, fs)
	defer session.Close()

	uiOpts := ui.Options{
		Context:  ctx,
		Uploader: session,
		Validate: func(d item.Draft) (item.Info, error) {
			return d.Validate(fs)
		},
		ThemeName: userPrefs.Theme,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
