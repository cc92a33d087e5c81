package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/infrastructure/excel"
)

func TestEstoqueReport_FilasPorMaterial(t *testing.T) {
	g := excel.NewEstoqueReport()
	assert.Equal(t, "xlsx", g.Format())

	updated := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	content, err := g.GenerateEstoqueReport(context.Background(), []dto.EstoqueResponse{
		{MaterialID: "m1", MaterialName: "Papelão", Unit: "kg", Quantity: decimal.NewFromInt(10), UpdatedAt: updated},
		{MaterialID: "m2", MaterialName: "Vidro", Unit: "un", Quantity: decimal.RequireFromString("2.5"), UpdatedAt: updated},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"material_id", "material", "unidade", "quantidade", "atualizado_em"}, rows[0])
	assert.Equal(t, []string{"m1", "Papelão", "kg", "10", "2024-05-02 10:30:00"}, rows[1])
	assert.Equal(t, "2.5", rows[2][3])
}

func TestEstoqueReport_Vacio(t *testing.T) {
	content, err := excel.NewEstoqueReport().GenerateEstoqueReport(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
