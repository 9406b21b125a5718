package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robertatena/quem-assina-cnpj/batch"
	"github.com/robertatena/quem-assina-cnpj/registry"
)

var (
	batchInput      string
	batchOutput     string
	batchAlternates bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Processa um CSV de CNPJs e exporta o resultado",
	Long: "Lê um CSV com uma coluna 'cnpj' (com ou sem máscara), resolve cada\n" +
		"linha em sequência e grava o resultado. A extensão do arquivo de\n" +
		"saída decide o formato: .csv ou .xlsx.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		in, err := os.Open(batchInput)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer in.Close()

		cnpjs, err := batch.ReadCNPJColumn(in)
		if err != nil {
			return err
		}

		allowAlternates := cfg.EnableAltProviders
		if cmd.Flags().Changed("alternates") {
			allowAlternates = batchAlternates
		}

		resolver := registry.NewResolverFromConfig(cfg, registry.NewCache(cfg.CacheTTL, cfg.CacheMaxSize), nil)
		rows := batch.NewProcessor(resolver).Run(cmd.Context(), cnpjs, allowAlternates)

		out, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer out.Close()

		switch {
		case strings.HasSuffix(batchOutput, ".xlsx"):
			err = batch.WriteXLSX(out, rows)
		case strings.HasSuffix(batchOutput, ".csv"):
			err = batch.WriteCSV(out, rows)
		default:
			return fmt.Errorf("unsupported output extension: %s (use .csv or .xlsx)", batchOutput)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%d CNPJs processados, resultado em %s\n", len(rows), batchOutput)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "CSV de entrada com a coluna 'cnpj'")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "resultado_cnpjs.csv", "arquivo de saída (.csv ou .xlsx)")
	batchCmd.Flags().BoolVar(&batchAlternates, "alternates", true,
		"tentar provedores alternativos quando a fonte primária não retornar QSA")
	_ = batchCmd.MarkFlagRequired("input")
}
