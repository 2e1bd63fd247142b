package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/config"
	"github.com/peterkuimelis/rpsx/internal/logger"
	"github.com/peterkuimelis/rpsx/internal/web"
)

func main() {
	cfgFile := flag.String("config", "", "path to config YAML file")
	addr := flag.String("addr", "", "HTTP address to listen on (default from config)")
	flag.Parse()

	logger.Init(os.Stderr)

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logger.Component("web")
	srv := web.NewServer(cfg.Rounds, log)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("rpsx web UI listening")
	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
