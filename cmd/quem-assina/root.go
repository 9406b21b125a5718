package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/robertatena/quem-assina-cnpj/internal/config"
)

// version é definida no build via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "quem-assina",
	Short: "Descobre quem provavelmente assina por um CNPJ",
	Long: "Consulta o QSA de um CNPJ em fontes públicas (BrasilAPI, ReceitaWS) e\n" +
		"em um gateway interno opcional, e marca por heurística de cargo quem\n" +
		"provavelmente tem poder de assinatura.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.Version = version
}

// loadConfig carrega .env (quando existir) e monta a configuração, além
// de ajustar o nível do logger global.
func loadConfig() (*config.Config, error) {
	// .env ausente não é erro: em produção tudo vem do ambiente
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
