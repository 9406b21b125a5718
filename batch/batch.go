// Package batch processa lotes de CNPJs vindos de CSV: resolve cada
// linha em sequência, aplica a heurística de assinantes e exporta o
// resultado em CSV ou XLSX.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/robertatena/quem-assina-cnpj/classify"
	"github.com/robertatena/quem-assina-cnpj/cnpj"
	"github.com/robertatena/quem-assina-cnpj/registry"
)

// Erros de entrada do lote. São os únicos erros que o modo lote devolve
// ao chamador; falha de consulta de uma linha nunca aborta o lote.
var (
	ErrMissingCNPJColumn = errors.New("o CSV deve conter uma coluna 'cnpj'")
	ErrNoValidCNPJ       = errors.New("nenhum CNPJ com 14 dígitos encontrado no CSV")
)

// Row uma linha do resultado do lote. Linhas que falharam por completo
// carregam a mensagem em Erro e os demais campos vazios além do CNPJ.
type Row struct {
	CNPJ                string `json:"cnpj"`
	RazaoSocial         string `json:"razao_social"`
	UF                  string `json:"uf"`
	Municipio           string `json:"municipio"`
	Porte               string `json:"porte"`
	EntidadePublica     string `json:"entidade_publica"`
	ProvaveisAssinantes string `json:"provaveis_assinantes"`
	Fonte               string `json:"fonte"`
	JuntaURL            string `json:"junta_url"`
	Erro                string `json:"erro,omitempty"`
}

// ReadCNPJColumn lê o CSV e devolve os CNPJs da coluna "cnpj" já em
// dígitos. Linhas cujo conteúdo não tem exatamente 14 dígitos são
// descartadas em silêncio (a coluna costuma trazer lixo de planilha);
// a ausência da coluna ou de qualquer linha aproveitável é erro.
func ReadCNPJColumn(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolera linhas com colunas a menos

	header, err := reader.Read()
	if err != nil {
		return nil, ErrMissingCNPJColumn
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "cnpj") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrMissingCNPJColumn
	}

	var cnpjs []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// linha malformada não derruba o lote
			continue
		}
		if col >= len(record) {
			continue
		}
		digits := cnpj.OnlyDigits(record[col])
		if len(digits) == cnpj.Length {
			cnpjs = append(cnpjs, digits)
		}
	}

	if len(cnpjs) == 0 {
		return nil, ErrNoValidCNPJ
	}
	return cnpjs, nil
}

// Processor resolve lotes de CNPJs, uma linha por vez.
type Processor struct {
	resolver *registry.Resolver
	logger   *slog.Logger
}

// NewProcessor cria um processador de lote sobre o resolvedor dado.
func NewProcessor(resolver *registry.Resolver) *Processor {
	return &Processor{
		resolver: resolver,
		logger:   slog.Default().With("component", "batch"),
	}
}

// Run resolve cada CNPJ em sequência. Não há paralelismo: os provedores
// públicos têm limites de taxa apertados e a ordem das linhas do
// resultado deve espelhar a entrada.
func (p *Processor) Run(ctx context.Context, cnpjs []string, allowAlternates bool) []Row {
	rows := make([]Row, 0, len(cnpjs))
	for i, digits := range cnpjs {
		rows = append(rows, p.processOne(ctx, digits, allowAlternates))
		p.logger.Info("batch row processed",
			"row", i+1,
			"total", len(cnpjs),
			"cnpj", digits,
			"fonte", rows[len(rows)-1].Fonte)
	}
	return rows
}

func (p *Processor) processOne(ctx context.Context, digits string, allowAlternates bool) Row {
	res := p.resolver.Resolve(ctx, digits, allowAlternates)

	row := Row{CNPJ: cnpj.Format(digits)}

	// Falha total: todos os provedores erraram e não sobrou nada útil.
	if res.Source == registry.SourceUnknown && len(res.Errors) > 0 &&
		len(res.Officers) == 0 && len(res.Data) == 0 {
		row.Erro = joinProviderErrors(res.Errors)
		return row
	}

	classified := classify.Classify(res.Officers)
	uf := res.State()

	row.RazaoSocial = res.LegalName()
	row.UF = uf
	row.Municipio = res.City()
	row.Porte = res.Porte()
	row.EntidadePublica = simNao(classify.IsPublicEntity(res.Natureza(), res.NaturezaCode()))
	row.ProvaveisAssinantes = strings.Join(classify.LikelySignerNames(classified), ", ")
	row.Fonte = string(res.Source)
	row.JuntaURL = classify.JuntaURL(uf)
	return row
}

func simNao(b bool) string {
	if b {
		return "sim"
	}
	return "nao"
}

// joinProviderErrors achata o mapa de erros por provedor em uma mensagem
// estável (ordem alfabética de provedor) e curta o bastante para caber
// em uma célula de planilha.
func joinProviderErrors(errs map[string]string) string {
	providers := make([]string, 0, len(errs))
	for name := range errs {
		providers = append(providers, name)
	}
	sort.Strings(providers)

	parts := make([]string, 0, len(providers))
	for _, name := range providers {
		parts = append(parts, name+": "+errs[name])
	}
	msg := strings.Join(parts, "; ")
	if len(msg) > 180 {
		msg = msg[:180]
	}
	return msg
}
