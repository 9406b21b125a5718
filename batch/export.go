package batch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Cabeçalho das exportações, na ordem das colunas de Row.
var exportHeader = []string{
	"cnpj", "razao_social", "uf", "municipio", "porte",
	"entidade_publica", "provaveis_assinantes", "fonte", "junta_url", "erro",
}

func rowValues(r Row) []string {
	return []string{
		r.CNPJ, r.RazaoSocial, r.UF, r.Municipio, r.Porte,
		r.EntidadePublica, r.ProvaveisAssinantes, r.Fonte, r.JuntaURL, r.Erro,
	}
}

// WriteCSV escreve o resultado do lote como CSV em UTF-8 com BOM. O
// BOM faz o Excel abrir acentos corretamente sem importação manual.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(rowValues(row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX escreve o resultado do lote como planilha XLSX.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Resultados"
	f.SetSheetName("Sheet1", sheet)

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		values := rowValues(row)
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// XLSXBytes serializa o lote como XLSX em memória, para download HTTP.
func XLSXBytes(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
