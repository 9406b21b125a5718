// Package classify aplica a heurística de "quem provavelmente assina"
// sobre o quadro de sócios e administradores (QSA) de um CNPJ.
//
// É uma heurística de palavras-chave sobre o texto do cargo, não uma
// determinação jurídica: quem assina de fato depende do contrato social,
// das últimas alterações e de eventuais procurações.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/robertatena/quem-assina-cnpj/registry"
)

// SignerKeywords cargos que tipicamente carregam poder de assinatura.
// A comparação é por substring no cargo em minúsculas, então
// "sócio-gerente" casa com "gerente".
var SignerKeywords = []string{
	"administrador", "administradora",
	"sócio-administrador", "sócio administrador",
	"diretor", "diretora",
	"presidente", "presidenta",
	"procurador", "procuradora",
	"gerente", "gerenta",
	"representante", "sócio gerente",
}

// Placeholders para campos ausentes no QSA retornado pelo provedor.
const (
	MissingName = "(sem nome)"
	MissingRole = "(sem qualificação)"
)

// ClassifiedOfficer é um sócio com a marcação da heurística.
type ClassifiedOfficer struct {
	Name         string `json:"nome"`
	Role         string `json:"qualificacao"`
	LikelySigner bool   `json:"provavel_assinante"`
}

// stripAccents remove marcas diacríticas para a comparação tolerar
// planilhas e APIs que devolvem cargos sem acento.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}

// foldedKeywords é a lista de palavras-chave já sem acentos, computada
// uma vez na carga do pacote.
var foldedKeywords = func() []string {
	out := make([]string, len(SignerKeywords))
	for i, k := range SignerKeywords {
		out[i] = fold(k)
	}
	return out
}()

// Classify marca cada sócio do QSA como provável assinante ou não.
// Campos ausentes viram placeholders em vez de falhar.
func Classify(officers []registry.Officer) []ClassifiedOfficer {
	if len(officers) == 0 {
		return nil
	}
	out := make([]ClassifiedOfficer, 0, len(officers))
	for _, o := range officers {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			name = MissingName
		}
		role := strings.TrimSpace(o.Role)
		if role == "" {
			role = MissingRole
		}
		out = append(out, ClassifiedOfficer{
			Name:         name,
			Role:         role,
			LikelySigner: isLikelySigner(o.Role),
		})
	}
	return out
}

// LikelySignerNames retorna os nomes marcados como prováveis assinantes,
// na ordem em que vieram do provedor.
func LikelySignerNames(classified []ClassifiedOfficer) []string {
	var names []string
	for _, c := range classified {
		if c.LikelySigner {
			names = append(names, c.Name)
		}
	}
	return names
}

func isLikelySigner(role string) bool {
	cargo := fold(strings.ToLower(strings.TrimSpace(role)))
	if cargo == "" {
		return false
	}
	for _, keyword := range foldedKeywords {
		if strings.Contains(cargo, keyword) {
			return true
		}
	}
	return false
}
