package registry

import (
	"strconv"
	"strings"
)

// Cada provedor usa um nome diferente para o mesmo campo lógico. As
// listas abaixo são ordens de prioridade: o primeiro alias presente e
// não vazio vence. Centralizar isso aqui mantém as idiossincrasias de
// cada provedor em um lugar só.
var (
	aliasOfficerList  = []string{"qsa", "socios"}
	aliasOfficerName  = []string{"nome_socio", "nome", "nome_rep_legal"}
	aliasOfficerRole  = []string{"qualificacao_socio", "qualificacao", "qual"}
	aliasState        = []string{"estado", "uf", "estado_nf"}
	aliasCity         = []string{"cidade", "municipio"}
	aliasLegalName    = []string{"razao_social", "nome_fantasia", "nome"}
	aliasNatureza     = []string{"natureza_juridica"}
	aliasNaturezaCode = []string{"natureza_juridica_codigo"}
)

// stringField resolve um campo textual seguindo a lista de aliases.
// Valores numéricos (o JSON de alguns provedores devolve códigos como
// número) são convertidos para string.
func stringField(m map[string]any, aliases ...string) string {
	for _, key := range aliases {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return s
			}
		case float64:
			// encoding/json decodifica números JSON como float64
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

// mapField resolve um campo que deve ser um objeto JSON.
func mapField(m map[string]any, aliases ...string) map[string]any {
	for _, key := range aliases {
		if sub, ok := m[key].(map[string]any); ok {
			return sub
		}
	}
	return nil
}

// listField resolve um campo que deve ser uma lista JSON não vazia.
func listField(m map[string]any, aliases ...string) []any {
	for _, key := range aliases {
		if list, ok := m[key].([]any); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

// officersFromList normaliza a lista de sócios de qualquer provedor para
// o formato comum. Itens que não são objetos são ignorados; nome e
// qualificação ausentes ficam vazios (o classificador põe o placeholder).
func officersFromList(list []any) []Officer {
	if len(list) == 0 {
		return nil
	}
	officers := make([]Officer, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		officers = append(officers, Officer{
			Name: stringField(entry, aliasOfficerName...),
			Role: stringField(entry, aliasOfficerRole...),
		})
	}
	return officers
}

// Acessores do Result sobre o mapa semi-estruturado retornado pelos
// provedores. O estabelecimento pode vir aninhado (BrasilAPI) ou já na
// raiz (forma comum construída pelo adaptador da ReceitaWS).

// LegalName retorna a razão social (com fallback para nome fantasia).
func (r *Result) LegalName() string {
	return stringField(r.Data, aliasLegalName...)
}

// State retorna a UF do estabelecimento.
func (r *Result) State() string {
	if est := mapField(r.Data, "estabelecimento"); est != nil {
		if uf := stringField(est, aliasState...); uf != "" {
			return uf
		}
	}
	return stringField(r.Data, aliasState...)
}

// City retorna o município do estabelecimento.
func (r *Result) City() string {
	if est := mapField(r.Data, "estabelecimento"); est != nil {
		if city := stringField(est, aliasCity...); city != "" {
			return city
		}
	}
	return stringField(r.Data, aliasCity...)
}

// CEP retorna o CEP do estabelecimento.
func (r *Result) CEP() string {
	if est := mapField(r.Data, "estabelecimento"); est != nil {
		if cep := stringField(est, "cep"); cep != "" {
			return cep
		}
	}
	return stringField(r.Data, "cep")
}

// Porte retorna o porte da empresa.
func (r *Result) Porte() string {
	return stringField(r.Data, "porte")
}

// Natureza retorna a descrição da natureza jurídica.
func (r *Result) Natureza() string {
	return stringField(r.Data, aliasNatureza...)
}

// NaturezaCode retorna o código da natureza jurídica como string.
func (r *Result) NaturezaCode() string {
	return stringField(r.Data, aliasNaturezaCode...)
}

// Address monta o endereço do estabelecimento em uma linha.
func (r *Result) Address() string {
	est := mapField(r.Data, "estabelecimento")
	if est == nil {
		return ""
	}
	parts := []string{
		strings.TrimSpace(stringField(est, "tipo_logradouro") + " " + stringField(est, "logradouro")),
		stringField(est, "numero"),
		stringField(est, "complemento"),
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
