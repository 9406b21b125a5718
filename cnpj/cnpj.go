// Package cnpj normaliza, valida e formata o identificador fiscal de
// pessoa jurídica brasileiro (CNPJ, 14 dígitos).
package cnpj

import "strings"

// Length número de dígitos de um CNPJ completo
const Length = 14

// Pesos dos dois passes de módulo 11 (Receita Federal)
var (
	weightsFirst  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weightsSecond = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits remove tudo que não for dígito. O resultado NÃO é garantido ter
// 14 posições; quem chama decide o que fazer com tamanhos errados.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid verifica os dois dígitos verificadores do CNPJ.
// Retorna false para tamanho diferente de 14 ou sequência de dígitos iguais
// (ex.: 11111111111111, que passa na conta mas não existe).
//
// A validação é consultiva: uma falha aqui não impede a consulta nos
// provedores, apenas gera um aviso para o usuário.
func IsValid(s string) bool {
	d := OnlyDigits(s)
	if len(d) != Length {
		return false
	}
	if allSameDigit(d) {
		return false
	}

	d1 := checkDigit(d[:12], weightsFirst)
	d2 := checkDigit(d[:12]+string(rune('0'+d1)), weightsSecond)

	return int(d[12]-'0') == d1 && int(d[13]-'0') == d2
}

// Format renderiza o CNPJ no formato canônico NN.NNN.NNN/NNNN-NN.
// Entradas com menos de 14 dígitos são completadas com zeros à esquerda.
func Format(s string) string {
	d := OnlyDigits(s)
	if len(d) < Length {
		d = strings.Repeat("0", Length-len(d)) + d
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// checkDigit computa um dígito verificador por soma ponderada módulo 11.
// Resto menor que 2 vira 0, senão 11 menos o resto.
func checkDigit(nums string, weights []int) int {
	sum := 0
	for i := 0; i < len(nums); i++ {
		sum += int(nums[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func allSameDigit(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
