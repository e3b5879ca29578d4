package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Ana Souza", NormalizeName("  Ana   Souza "))
	assert.Equal(t, "", NormalizeName("   "))
	assert.Equal(t, "Ana", NormalizeName("Ana"))
}

func TestNormalizeKind(t *testing.T) {
	assert.Equal(t, "CDB", NormalizeKind(" cdb "))
	assert.Equal(t, "", NormalizeKind(""))
}

func TestIsValidCustomerName(t *testing.T) {
	assert.False(t, IsValidCustomerName(""))
	assert.False(t, IsValidCustomerName("A"))
	assert.True(t, IsValidCustomerName("Jo"))
	assert.True(t, IsValidCustomerName(strings.Repeat("x", 80)))
	assert.False(t, IsValidCustomerName(strings.Repeat("x", 81)))
	// Rune count, not byte count.
	assert.True(t, IsValidCustomerName(strings.Repeat("ç", 80)))
}

func TestIsValidQuantity(t *testing.T) {
	assert.False(t, IsValidQuantity(0))
	assert.False(t, IsValidQuantity(-3))
	assert.True(t, IsValidQuantity(1))
}

func TestIsValidMaturity(t *testing.T) {
	assert.True(t, IsValidMaturity("2027-03-15"))
	assert.False(t, IsValidMaturity("15/03/2027"))
	assert.False(t, IsValidMaturity("2027-3-15"))
	assert.False(t, IsValidMaturity(""))
}
