package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/robertatena/quem-assina-cnpj/batch"
	"github.com/robertatena/quem-assina-cnpj/classify"
	"github.com/robertatena/quem-assina-cnpj/cnpj"
	"github.com/robertatena/quem-assina-cnpj/registry"
	apperrors "github.com/robertatena/quem-assina-cnpj/server/errors"
)

// LookupResponse resposta da consulta única.
type LookupResponse struct {
	CNPJ                string                       `json:"cnpj"`
	DigitosValidos      bool                         `json:"digitos_validos"`
	RazaoSocial         string                       `json:"razao_social"`
	UF                  string                       `json:"uf"`
	Municipio           string                       `json:"municipio"`
	Endereco            string                       `json:"endereco,omitempty"`
	CEP                 string                       `json:"cep,omitempty"`
	Porte               string                       `json:"porte,omitempty"`
	EntidadePublica     bool                         `json:"entidade_publica"`
	QSA                 []classify.ClassifiedOfficer `json:"qsa"`
	ProvaveisAssinantes []string                     `json:"provaveis_assinantes"`
	Fonte               string                       `json:"fonte"`
	JuntaURL            string                       `json:"junta_url,omitempty"`
	Erros               map[string]string            `json:"erros,omitempty"`
}

// BatchResponse resposta JSON do modo lote.
type BatchResponse struct {
	Total int         `json:"total"`
	Rows  []batch.Row `json:"rows"`
}

// ErrorResponse envelope de erro da API.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func sendJSONError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: true, Message: message})
}

// handleLookup consulta única: GET /api/cnpj/:id?alternates=true|false.
// Só o tamanho do identificador bloqueia a consulta; dígito verificador
// errado vira aviso (digitos_validos=false) e a consulta segue.
func (s *Server) handleLookup(c *gin.Context) {
	digits := cnpj.OnlyDigits(c.Param("id"))
	if len(digits) != cnpj.Length {
		appErr := apperrors.NewValidationError("CNPJ inválido: informe 14 dígitos, com ou sem máscara", nil)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	allowAlternates := s.cfg.EnableAltProviders
	if v, ok := c.GetQuery("alternates"); ok {
		allowAlternates = v != "0" && !strings.EqualFold(v, "false")
	}

	res := s.resolver.Resolve(c.Request.Context(), digits, allowAlternates)
	if s.metrics != nil {
		s.metrics.RecordLookup(string(res.Source))
	}

	classified := classify.Classify(res.Officers)
	signers := classify.LikelySignerNames(classified)
	uf := res.State()

	c.JSON(http.StatusOK, LookupResponse{
		CNPJ:                cnpj.Format(digits),
		DigitosValidos:      cnpj.IsValid(digits),
		RazaoSocial:         res.LegalName(),
		UF:                  uf,
		Municipio:           res.City(),
		Endereco:            res.Address(),
		CEP:                 res.CEP(),
		Porte:               res.Porte(),
		EntidadePublica:     classify.IsPublicEntity(res.Natureza(), res.NaturezaCode()),
		QSA:                 classified,
		ProvaveisAssinantes: signers,
		Fonte:               string(res.Source),
		JuntaURL:            classify.JuntaURL(uf),
		Erros:               nonEmptyErrors(res),
	})
}

// handleBatch lote: POST /api/batch com multipart "file" (CSV com
// coluna cnpj). ?format=json|csv|xlsx controla a resposta.
func (s *Server) handleBatch(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendJSONError(c, http.StatusBadRequest, "envie um arquivo CSV no campo 'file'")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		appErr := apperrors.WrapError(err, "failed to open uploaded file")
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	defer file.Close()

	cnpjs, err := batch.ReadCNPJColumn(file)
	if err != nil {
		// entrada malformada é sempre culpa do arquivo, não do servidor
		sendJSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	allowAlternates := s.cfg.EnableAltProviders
	if v, ok := c.GetQuery("alternates"); ok {
		allowAlternates = v != "0" && !strings.EqualFold(v, "false")
	}

	rows := batch.NewProcessor(s.resolver).Run(c.Request.Context(), cnpjs, allowAlternates)
	if s.metrics != nil {
		for _, row := range rows {
			s.metrics.RecordLookup(row.Fonte)
		}
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, BatchResponse{Total: len(rows), Rows: rows})

	case "csv":
		c.Header("Content-Disposition", `attachment; filename="resultado_cnpjs.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := batch.WriteCSV(c.Writer, rows); err != nil {
			s.logger.Error("csv export failed", "error", err)
		}

	case "xlsx":
		data, err := batch.XLSXBytes(rows)
		if err != nil {
			appErr := apperrors.WrapError(err, "failed to build xlsx")
			sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
			return
		}
		c.Header("Content-Disposition", `attachment; filename="resultado_cnpjs.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		sendJSONError(c, http.StatusBadRequest, "formato não suportado: use json, csv ou xlsx")
	}
}

// handleHealth health check simples com o estado do cache.
func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{
		"status":             "ok",
		"gateway_configured": s.cfg.GatewayConfigured(),
		"alt_providers":      s.cfg.EnableAltProviders,
	}
	if s.cache != nil {
		resp["cache"] = s.cache.Stats()
	}
	c.JSON(http.StatusOK, resp)
}

// handleMetrics devolve os contadores acumulados.
func (s *Server) handleMetrics(c *gin.Context) {
	if s.metrics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

func nonEmptyErrors(res *registry.Result) map[string]string {
	if len(res.Errors) == 0 {
		return nil
	}
	return res.Errors
}
