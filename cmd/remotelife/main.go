package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/yingnomad/remotelife/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatalf("❌ remotelife failed to initialize: %v", err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatalf("❌ remotelife failed: %v", err)
	}
}
