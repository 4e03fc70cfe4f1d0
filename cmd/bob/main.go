// Package main provides the entry point for the bob CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hdlforge/bob/internal/cli"
	"github.com/hdlforge/bob/internal/signal"
)

// Build information set via ldflags at release time.
//
//nolint:gochecknoglobals // Set by the linker
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	handler := signal.NewHandler(context.Background())
	go func() {
		<-handler.Interrupted()
		fmt.Fprintln(os.Stderr, "\ninterrupt: letting the current command finish; interrupt again to abort")
	}()

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	// os.Exit skips deferred calls, so clean up explicitly.
	handler.Stop()
	cli.CloseLogFile()

	os.Exit(cli.ExitCodeForError(err))
}
