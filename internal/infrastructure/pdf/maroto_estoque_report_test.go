package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recycle-api/internal/application/dto"
)

func TestEstoqueReport_GeneraPDF(t *testing.T) {
	g := NewEstoqueReport()
	assert.Equal(t, "pdf", g.Format())

	content, err := g.GenerateEstoqueReport(context.Background(), []dto.EstoqueResponse{
		{MaterialName: "Papelão", Unit: "kg", Quantity: decimal.NewFromInt(10)},
		{MaterialName: "Vidro", Unit: "kg", Quantity: decimal.RequireFromString("2.5")},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestEstoqueReport_SinItems(t *testing.T) {
	content, err := NewEstoqueReport().GenerateEstoqueReport(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
