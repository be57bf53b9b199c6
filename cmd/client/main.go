package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spaceshelter/orbitar-sub001/internal/client/cli"
	"github.com/spaceshelter/orbitar-sub001/internal/client/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
