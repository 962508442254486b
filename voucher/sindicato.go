package voucher

import (
	"strings"

	"github.com/warp/voucher-engine/tabular"
)

// Brazilian state abbreviations recognized in union names.
var estados = map[string]bool{
	"AC": true, "AL": true, "AM": true, "AP": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MG": true, "MS": true,
	"MT": true, "PA": true, "PB": true, "PE": true, "PI": true, "PR": true,
	"RJ": true, "RN": true, "RO": true, "RR": true, "RS": true, "SC": true,
	"SE": true, "SP": true, "TO": true,
}

// InferEstado extracts the state abbreviation from a union name.
// Matching is on whole tokens of the normalized text ("SINDICATO DOS
// COMERCIARIOS DE SP" -> "SP"), so "ESTADO" never matches "ES".
// Returns "" when no state token is present.
func InferEstado(sindicato string) string {
	norm := tabular.NormalizeValue(sindicato)
	for _, token := range strings.FieldsFunc(norm, func(r rune) bool {
		return !('A' <= r && r <= 'Z')
	}) {
		if estados[token] {
			return token
		}
	}
	return ""
}
