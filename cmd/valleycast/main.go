// Package main prints a mine forecast for one game.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	valleycastcmd "github.com/louisbranch/valleycast/internal/cmd/valleycast"
	"github.com/louisbranch/valleycast/internal/platform/config"
)

func main() {
	cfg, err := valleycastcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[VALLEYCAST] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := valleycastcmd.Run(ctx, cfg); err != nil {
		stop()
		config.Exitf("valleycast: %s", valleycastcmd.Describe(err, cfg.Locale))
	}
}
