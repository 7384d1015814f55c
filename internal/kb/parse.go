package kb

import "strings"

// IngredientLine is one parsed row of the formulation ingredient block:
//
//	INCI | Common | Function | % | Phase | Notes
//
// Phase and Notes are optional.
type IngredientLine struct {
	INCI       string `json:"inci"`
	CommonName string `json:"common_name"`
	Function   string `json:"function"`
	Percentage string `json:"percentage"`
	Phase      string `json:"phase"`
	Notes      string `json:"notes"`
}

const minIngredientFields = 4

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// ParseIngredientLines parses the pipe-delimited ingredient block. Blank
// lines are ignored and lines with fewer than four fields are skipped; the
// number of skipped lines is returned for logging.
func ParseIngredientLines(text string) ([]IngredientLine, int) {
	var (
		lines   []IngredientLine
		skipped int
	)
	for _, raw := range splitLines(text) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < minIngredientFields {
			skipped++
			continue
		}
		line := IngredientLine{
			INCI:       parts[0],
			CommonName: parts[1],
			Function:   parts[2],
			Percentage: parts[3],
		}
		if len(parts) > 4 {
			line.Phase = parts[4]
		}
		if len(parts) > 5 {
			line.Notes = parts[5]
		}
		lines = append(lines, line)
	}
	return lines, skipped
}

// TokenizeINCI splits a pasted INCI list on newlines and commas, trimming
// each name and dropping empties. Order of appearance is kept.
func TokenizeINCI(raw string) []string {
	var tokens []string
	for _, line := range splitLines(raw) {
		for _, part := range strings.Split(line, ",") {
			if name := strings.TrimSpace(part); name != "" {
				tokens = append(tokens, name)
			}
		}
	}
	return tokens
}

// DedupTokens keeps the first occurrence of each exact token.
func DedupTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
