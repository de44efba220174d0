package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AHORRA10", NormalizeCode("  ahorra10 "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestMatchesLineByEmbeddedID(t *testing.T) {
	c := Coupon{Code: "PROD-p7-0042", Type: CouponProduct, ProductName: "Nombre Viejo"}
	line := CartLine{ProductID: "p7", Name: "Nombre Nuevo"}

	// The product was renamed; the id embedded in the code still matches.
	assert.True(t, c.MatchesLine(line))
}

func TestMatchesLineByName(t *testing.T) {
	c := Coupon{Code: "LEGACY", Type: CouponProduct, ProductName: "Refresco de Cola"}

	assert.True(t, c.MatchesLine(CartLine{ProductID: "p9", Name: "Refresco de Cola"}))
	assert.False(t, c.MatchesLine(CartLine{ProductID: "p9", Name: "Refresco de Toronja"}))
}

func TestMatchesLineIDPrefixIsDelimited(t *testing.T) {
	c := Coupon{Code: "PROD-p1-0001", Type: CouponProduct}

	// "p1" must not match product "p11"; the trailing dash delimits the id.
	assert.False(t, c.MatchesLine(CartLine{ProductID: "p11", Name: "Otro"}))
	assert.True(t, c.MatchesLine(CartLine{ProductID: "p1", Name: "Otro"}))
}

func TestMatchesLineRejectsGeneralType(t *testing.T) {
	c := Coupon{Code: "PROD-p1-0001", Type: CouponGeneral, ProductName: "Refresco"}

	assert.False(t, c.MatchesLine(CartLine{ProductID: "p1", Name: "Refresco"}))
}

func TestNewProductCouponCode(t *testing.T) {
	code := NewProductCouponCode("p42")

	assert.True(t, strings.HasPrefix(code, "PROD-P42-"))
	assert.Len(t, code, len("PROD-P42-")+4)
}
