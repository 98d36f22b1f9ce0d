package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Thaquidheen/hoch-frontend-sub002/commands"
	"github.com/Thaquidheen/hoch-frontend-sub002/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commands.Execute(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
