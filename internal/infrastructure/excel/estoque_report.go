// Package excel exporta el estoque de un usuario como planilla XLSX.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/application/usecase"
)

var _ usecase.EstoqueReportGenerator = (*EstoqueReport)(nil)

// SheetName nombre de la hoja con el estoque.
const SheetName = "Estoque"

// EstoqueReport implementa usecase.EstoqueReportGenerator con excelize.
type EstoqueReport struct{}

// NewEstoqueReport construye el generador.
func NewEstoqueReport() *EstoqueReport { return &EstoqueReport{} }

// Format devuelve "xlsx".
func (g *EstoqueReport) Format() string { return "xlsx" }

// GenerateEstoqueReport escribe una fila por material: id, nombre, unidad, cantidad y última actualización.
func (g *EstoqueReport) GenerateEstoqueReport(_ context.Context, items []dto.EstoqueResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	header := []interface{}{"material_id", "material", "unidade", "quantidade", "atualizado_em"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}

	for i, it := range items {
		excelRow := []interface{}{
			it.MaterialID,
			it.MaterialName,
			it.Unit,
			it.Quantity.InexactFloat64(), // número, para que la planilla pueda sumarlo
			it.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
