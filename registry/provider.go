// Package registry consulta dados cadastrais de CNPJ em múltiplos
// provedores (gateway interno, BrasilAPI, ReceitaWS) e resolve qual
// resposta usar seguindo uma ordem fixa de prioridade.
package registry

import (
	"context"
	"fmt"
)

// Source identifica qual provedor originou o resultado da consulta.
type Source string

const (
	SourceGateway   Source = "gateway"
	SourceBrasilAPI Source = "brasilapi"
	SourceReceitaWS Source = "receitaws"
	// SourceUnknown indica resultado degradado: nenhum provedor
	// retornou QSA (ou todos falharam).
	SourceUnknown Source = "unknown"
)

// Officer é um sócio/administrador já normalizado para o formato comum,
// independente de qual provedor respondeu.
type Officer struct {
	Name string `json:"nome"`
	Role string `json:"qualificacao"`
}

// Result é o resultado de uma resolução. Criado a cada consulta e nunca
// retido; o mapa Errors carrega a mensagem de falha de cada provedor
// tentado sem sucesso.
type Result struct {
	Data     map[string]any    `json:"data"`
	Officers []Officer         `json:"qsa"`
	Source   Source            `json:"fonte"`
	Errors   map[string]string `json:"erros,omitempty"`
}

// Provider é um adaptador de fonte de dados cadastrais. Fetch faz uma
// única chamada de rede com timeout fixo; Normalize mapeia o payload
// específico do provedor para o formato comum.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, cnpjDigits string) (map[string]any, error)
	Normalize(payload map[string]any) (data map[string]any, officers []Officer)
}

// ProviderError é qualquer falha de um adaptador: erro de rede, timeout,
// status HTTP de erro ou corpo que não é JSON. Nunca interrompe a cadeia
// de resolução: é registrada e o próximo provedor é tentado.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(provider string, format string, args ...any) *ProviderError {
	return &ProviderError{Provider: provider, Err: fmt.Errorf(format, args...)}
}
