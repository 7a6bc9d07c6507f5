package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/app"
)

// The application id ships inside the binary; a corrupt build is caught at
// startup rather than by a failed platform call.
//
//go:embed steam_appid.txt
var embeddedAppID string

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	appIDFlag := flag.Uint("app", 0, "override the workshop application id (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if *appIDFlag > 0 {
		opts.AppID = uint32(*appIDFlag)
		opts.AppIDFromFlag = true
	} else {
		id, err := strconv.ParseUint(strings.TrimSpace(embeddedAppID), 10, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "uploader: embedded app id is unreadable; this build is corrupt: %v\n", err)
			return 1
		}
		opts.AppID = uint32(id)
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "uploader: %v\n", err)
		return 1
	}
	return 0
}
