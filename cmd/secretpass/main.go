// Command secretpass opens a login screen gated on five device conditions.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/cli"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBuilder(build)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
