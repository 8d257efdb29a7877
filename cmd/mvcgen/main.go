// Command mvcgen generates MVC model classes and partial views from CMS form
// schemas.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/goliatone/go-mvcgen/cmd/mvcgen/internal"
	"github.com/goliatone/go-mvcgen/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := internal.Run(ctx, os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, commands.Message(err))
		stop()
		os.Exit(1)
	}
}
