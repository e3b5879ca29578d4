package securities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV_CanonicalHeaders(t *testing.T) {
	path := writeSeed(t, "kind,maturity,rate,issuer\nCDB,2027-03-15,13.2%,Banco Alfa\nLCI,2026-08-01,11%,Banco Beta\n")

	out, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "CDB", out[0].Kind)
	assert.Equal(t, "2027-03-15", out[0].Maturity)
	assert.True(t, out[0].Rate.Equal(decimal.RequireFromString("13.2")))
	assert.Equal(t, "Banco Alfa", out[0].Issuer)
	assert.NotEqual(t, out[0].ID, out[1].ID)
}

func TestLoadCSV_PortugueseHeaderSynonyms(t *testing.T) {
	path := writeSeed(t, "Emissor,Tipo,Vencimento,Tx. Portal\nBanco Alfa,cdb,15/03/2027,\"12,5%\"\n")

	out, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "CDB", out[0].Kind)
	assert.Equal(t, "2027-03-15", out[0].Maturity)
	assert.True(t, out[0].Rate.Equal(decimal.RequireFromString("12.5")))
}

func TestLoadCSV_AccentedHeaders(t *testing.T) {
	path := writeSeed(t, "Instituição,Título,Vencimento,Taxa\nBanco Beta,LCI,2026-08-01,11%\n")

	out, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "LCI", out[0].Kind)
	assert.Equal(t, "Banco Beta", out[0].Issuer)
}

func TestLoadCSV_HeaderNotOnFirstRow(t *testing.T) {
	path := writeSeed(t, "Planilha de ofertas,,,\nGerada em 2026-01-02,,,\nkind,maturity,rate,issuer\nCDB,2027-01-01,13%,Banco Alfa\n")

	out, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "CDB", out[0].Kind)
}

func TestLoadCSV_SkipsBadRows(t *testing.T) {
	path := writeSeed(t, "kind,maturity,rate,issuer\nCDB,2027-01-01,13%,Banco Alfa\n,2027-01-01,13%,Banco Alfa\nLCI,not-a-date,11%,Banco Beta\nLCA,2026-01-01,,Banco Gama\nLCA,2026-01-01,10%,Banco Gama\n")

	out, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "CDB", out[0].Kind)
	assert.Equal(t, "LCA", out[1].Kind)
}

func TestLoadCSV_NoUsableHeader(t *testing.T) {
	path := writeSeed(t, "a,b,c\n1,2,3\n")
	_, err := LoadCSV(path)
	require.Error(t, err)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestParseMaturity(t *testing.T) {
	for in, want := range map[string]string{
		"2027-03-15":          "2027-03-15",
		"15/03/2027":          "2027-03-15",
		"2027-03-15 00:00:00": "2027-03-15",
	} {
		got, err := ParseMaturity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "15-03-2027", "soon"} {
		_, err := ParseMaturity(in)
		assert.Error(t, err, in)
	}
}

func TestParseRate(t *testing.T) {
	for in, want := range map[string]string{
		"12,5%":    "12.5",
		"13.2%":    "13.2",
		"122% CDI": "122",
		"0.0988":   "9.88",  // spreadsheet fraction
		"1.001":    "100.1", // %CDI multiple
		"9.88":     "9.88",  // already a percentage
		"15":       "15",
		"0,5%":     "0.5", // explicit percent sign, no upscaling
	} {
		got, err := ParseRate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s, want %s", in, got, want)
	}

	for _, in := range []string{"", "isento", "%"} {
		_, err := ParseRate(in)
		assert.Error(t, err, in)
	}
}
