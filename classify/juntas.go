package classify

import "strings"

// JuntasByUF portal da Junta Comercial de cada UF. Para empresas
// privadas, é a fonte oficial para confirmar quem assina (ficha
// cadastral e alterações contratuais).
var JuntasByUF = map[string]string{
	"AC": "https://www.juceac.ac.gov.br/",
	"AL": "https://www.juceal.al.gov.br/",
	"AM": "https://www.jucea.am.gov.br/",
	"AP": "https://www.jucap.ap.gov.br/",
	"BA": "https://www.juceb.ba.gov.br/",
	"CE": "https://www.jucec.ce.gov.br/",
	"DF": "https://www.jucis.df.gov.br/",
	"ES": "https://www.jucees.es.gov.br/",
	"GO": "https://www.juceg.go.gov.br/",
	"MA": "https://www.jucema.ma.gov.br/",
	"MG": "https://www.jucemg.mg.gov.br/",
	"MS": "https://www.jucems.ms.gov.br/",
	"MT": "https://www.jucemat.mt.gov.br/",
	"PA": "https://www.jucepa.pa.gov.br/",
	"PB": "https://www.jucep.pb.gov.br/",
	"PE": "https://www.jucepe.pe.gov.br/",
	"PI": "https://www.jucepi.pi.gov.br/",
	"PR": "https://www.juntacommercial.pr.gov.br/",
	"RJ": "https://www.jucerja.rj.gov.br/",
	"RN": "https://www.jucern.rn.gov.br/",
	"RO": "https://www.jucer.ro.gov.br/",
	"RR": "https://www.jucerr.rr.gov.br/",
	"RS": "https://www.jucisrs.rs.gov.br/",
	"SC": "https://www.jucesc.sc.gov.br/",
	"SE": "https://www.jucese.se.gov.br/",
	"SP": "https://www.jucesp.sp.gov.br/",
	"TO": "https://www.jucetins.to.gov.br/",
}

// JuntaURL retorna o portal da Junta Comercial da UF, ou vazio quando a
// UF é desconhecida.
func JuntaURL(uf string) string {
	return JuntasByUF[strings.ToUpper(strings.TrimSpace(uf))]
}

// IsPublicEntity verifica se a natureza jurídica indica ente público
// (código iniciado em 1 na tabela da Receita, ou texto de administração
// pública). Para entes públicos, quem assina se confirma em lei,
// estatuto e atos no Diário Oficial, não na Junta.
func IsPublicEntity(natureza, naturezaCode string) bool {
	if naturezaCode != "" && strings.HasPrefix(naturezaCode, "1") {
		return true
	}
	return strings.Contains(strings.ToLower(natureza), "administra")
}
