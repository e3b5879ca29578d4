package securities

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"

	"titulos-console/internal/domain"
	"titulos-console/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Seed files come from operations teams and use inconsistent Portuguese
// headers; each canonical column accepts a few known spellings.
var headerSynonyms = map[string][]string{
	"issuer":   {"emissor", "instituicao", "banco", "issuer"},
	"kind":     {"tipo", "produto", "titulo", "kind"},
	"maturity": {"vencimento", "datavencimento", "maturity"},
	"rate":     {"txportal", "taxadoportal", "taxa", "txmaxima", "rate"},
}

const headerScanRows = 50

// LoadCSV reads a security seed file. The header row is located by scanning
// the first rows for one that resolves at least kind, maturity and rate.
// Rows that fail to parse are skipped with a warning, not fatal.
func LoadCSV(path string) ([]domain.Security, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	headerIdx, cols, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("seed file %s: no usable header row (need kind, maturity and rate columns)", path)
	}

	var out []domain.Security
	for i, row := range rows[headerIdx+1:] {
		sec, err := parseRow(row, cols)
		if err != nil {
			log.Warn().Int("row", headerIdx+2+i).Err(err).Msg("skipping seed row")
			continue
		}
		out = append(out, sec)
	}
	return out, nil
}

type columns struct {
	kind, maturity, rate, issuer int // -1 when absent
}

func findHeader(rows [][]string) (int, columns, bool) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	best := -1
	bestScore := 0
	var bestCols columns
	for i := 0; i < limit; i++ {
		colmap := map[string]int{}
		for j, cell := range rows[i] {
			if h := normalizeHeader(cell); h != "" {
				if _, seen := colmap[h]; !seen {
					colmap[h] = j
				}
			}
		}
		cols := columns{
			kind:     pickColumn(colmap, "kind"),
			maturity: pickColumn(colmap, "maturity"),
			rate:     pickColumn(colmap, "rate"),
			issuer:   pickColumn(colmap, "issuer"),
		}
		score := 0
		for _, idx := range []int{cols.kind, cols.maturity, cols.rate, cols.issuer} {
			if idx >= 0 {
				score++
			}
		}
		if cols.kind >= 0 && cols.maturity >= 0 && cols.rate >= 0 && score > bestScore {
			best, bestScore, bestCols = i, score, cols
		}
	}
	return best, bestCols, best >= 0
}

func pickColumn(colmap map[string]int, canonical string) int {
	for _, syn := range headerSynonyms[canonical] {
		if idx, ok := colmap[syn]; ok {
			return idx
		}
	}
	return -1
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)
var accentStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeHeader lowercases, strips accents and drops punctuation/spaces so
// "Tx. Portal" and "txportal" resolve to the same column.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(accentStripper, s); err == nil {
		s = folded
	}
	return nonAlnumRe.ReplaceAllString(s, "")
}

func parseRow(row []string, cols columns) (domain.Security, error) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	kind := validation.NormalizeKind(cell(cols.kind))
	if kind == "" {
		return domain.Security{}, fmt.Errorf("empty kind")
	}
	issuer := validation.NormalizeName(cell(cols.issuer))
	if issuer == "" {
		return domain.Security{}, fmt.Errorf("empty issuer")
	}
	maturity, err := ParseMaturity(cell(cols.maturity))
	if err != nil {
		return domain.Security{}, err
	}
	rate, err := ParseRate(cell(cols.rate))
	if err != nil {
		return domain.Security{}, err
	}

	return domain.Security{
		ID:       uuid.New(),
		Kind:     kind,
		Maturity: maturity,
		Rate:     rate,
		Issuer:   issuer,
	}, nil
}

var maturityLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05", "02/01/2006 15:04:05"}

// ParseMaturity canonicalizes a maturity cell to YYYY-MM-DD.
func ParseMaturity(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("empty maturity")
	}
	for _, layout := range maturityLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid maturity %q", v)
}

var rateNumberRe = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)

// threshold below which a bare number is taken as a spreadsheet fraction
// (0.0988 meaning 9.88%) rather than an already-scaled percentage.
var rateFractionCeiling = decimal.NewFromInt(3)

// ParseRate accepts the rate formats seen in the seed spreadsheets:
// fractions like 0.0988 (-> 9.88), %CDI multiples like 1.001 (-> 100.1),
// "122% CDI" (-> 122) and "12,5%" (-> 12.5).
func ParseRate(v string) (decimal.Decimal, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty rate")
	}
	m := rateNumberRe.FindString(s)
	if m == "" {
		return decimal.Zero, fmt.Errorf("invalid rate %q", v)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", v, err)
	}
	if !strings.Contains(s, "%") && d.IsPositive() && d.LessThanOrEqual(rateFractionCeiling) {
		d = d.Mul(decimal.NewFromInt(100))
	}
	return d, nil
}
