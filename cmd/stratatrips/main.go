// cmd/stratatrips/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/stratatrips/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
