package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/robertatena/quem-assina-cnpj/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe o servidor HTTP de consulta",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		srv := server.Build(cfg)

		// desligamento limpo em SIGINT/SIGTERM
		done := make(chan error, 1)
		go func() { done <- srv.Start() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-done:
			return err
		case <-sig:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}
