package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recycle-api/internal/application/dto"
)

func TestMaterialRequest_Validate(t *testing.T) {
	ok := dto.MaterialRequest{Name: "Papelão", Unit: "kg"}
	assert.NoError(t, ok.Validate())

	sinNombre := dto.MaterialRequest{Unit: "kg"}
	assert.Error(t, sinNombre.Validate())

	sinUnidad := dto.MaterialRequest{Name: "Vidro"}
	assert.Error(t, sinUnidad.Validate())
}

func TestRegisterMovimentacaoRequest_Validate(t *testing.T) {
	in := dto.RegisterMovimentacaoRequest{MaterialID: "m1", Type: "ENTRADA", Quantity: decimal.NewFromInt(5)}
	assert.NoError(t, in.Validate())

	tipoInvalido := in
	tipoInvalido.Type = "AJUSTE"
	assert.Error(t, tipoInvalido.Validate())

	cero := in
	cero.Quantity = decimal.Zero
	assert.Error(t, cero.Validate())

	negativa := in
	negativa.Quantity = decimal.NewFromInt(-1)
	assert.Error(t, negativa.Validate())
}

func TestRegisterMovimentacaoRequest_ValidateEscalaYTope(t *testing.T) {
	cases := []struct {
		name    string
		qty     string
		wantErr bool
	}{
		{"tres decimales", "10.125", false},
		{"ceros a la derecha", "1.50000", false},
		{"justo bajo el tope", "99999999999.999", false},
		{"cuatro decimales", "0.0001", true},
		{"redondearía en la columna", "10.0005", true},
		{"en el tope", "100000000000", true},
		{"sobre el tope", "1000000000000", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := dto.RegisterMovimentacaoRequest{MaterialID: "m1", Type: "ENTRADA", Quantity: decimal.RequireFromString(tc.qty)}
			if tc.wantErr {
				assert.Error(t, in.Validate())
			} else {
				assert.NoError(t, in.Validate())
			}
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	assert.NoError(t, (&dto.RegisterRequest{Email: "ana@recicla.com", Password: "12345678"}).Validate())
	assert.Error(t, (&dto.RegisterRequest{Email: "no-es-email", Password: "12345678"}).Validate())
	assert.Error(t, (&dto.RegisterRequest{Email: "ana@recicla.com", Password: "corto"}).Validate())
}
