package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recycle-api/internal/domain/entity"
)

func TestNormalizeName(t *testing.T) {
	composed := "Papel\u00e3o"
	decomposed := "Papela\u0303o"

	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, entity.NormalizeName(composed), entity.NormalizeName(decomposed))
	assert.Equal(t, "Vidro", entity.NormalizeName("  Vidro \t"))
}
