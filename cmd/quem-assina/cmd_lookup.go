package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robertatena/quem-assina-cnpj/classify"
	"github.com/robertatena/quem-assina-cnpj/cnpj"
	"github.com/robertatena/quem-assina-cnpj/registry"
)

var lookupAlternates bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <cnpj>",
	Short: "Consulta um único CNPJ e mostra os prováveis assinantes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		digits := cnpj.OnlyDigits(args[0])
		if len(digits) != cnpj.Length {
			return fmt.Errorf("CNPJ inválido: informe 14 dígitos, com ou sem máscara")
		}
		if !cnpj.IsValid(digits) {
			fmt.Fprintln(os.Stderr, "aviso: dígitos verificadores não batem; consultando mesmo assim")
		}

		allowAlternates := cfg.EnableAltProviders
		if cmd.Flags().Changed("alternates") {
			allowAlternates = lookupAlternates
		}

		resolver := registry.NewResolverFromConfig(cfg, registry.NewCache(cfg.CacheTTL, cfg.CacheMaxSize), nil)
		res := resolver.Resolve(cmd.Context(), digits, allowAlternates)

		printResult(digits, res)
		return nil
	},
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupAlternates, "alternates", true,
		"tentar provedores alternativos quando a fonte primária não retornar QSA")
}

func printResult(digits string, res *registry.Result) {
	uf := res.State()

	fmt.Printf("CNPJ:         %s\n", cnpj.Format(digits))
	fmt.Printf("Razão social: %s\n", orDash(res.LegalName()))
	fmt.Printf("Município/UF: %s / %s\n", orDash(res.City()), orDash(uf))
	fmt.Printf("Porte:        %s\n", orDash(res.Porte()))
	fmt.Printf("Fonte:        %s\n", res.Source)

	classified := classify.Classify(res.Officers)
	if len(classified) == 0 {
		fmt.Println("\nNenhum sócio retornado pelas fontes consultadas.")
		fmt.Println("Para confirmar, consulte a Junta Comercial (empresas privadas) ou atos oficiais (entes públicos).")
	} else {
		fmt.Println("\nQuadro de Sócios e Administradores (QSA):")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOME\tQUALIFICAÇÃO\tPROVÁVEL ASSINANTE")
		for _, o := range classified {
			fmt.Fprintf(w, "%s\t%s\t%s\n", o.Name, o.Role, simNao(o.LikelySigner))
		}
		w.Flush()

		if signers := classify.LikelySignerNames(classified); len(signers) > 0 {
			fmt.Printf("\nProváveis signatários: %s\n", strings.Join(signers, ", "))
		} else {
			fmt.Println("\nNenhum cargo típico de assinante encontrado no QSA.")
		}
	}

	if junta := classify.JuntaURL(uf); junta != "" {
		fmt.Printf("\nJunta Comercial (%s): %s\n", uf, junta)
	}

	if len(res.Errors) > 0 {
		fmt.Fprintln(os.Stderr, "\nErros por provedor:")
		for provider, msg := range res.Errors {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", provider, msg)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func simNao(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}
