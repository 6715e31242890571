package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de Swagger hace panic en el arranque si el archivo servido no
// existe o no es JSON válido, así que el spec generado se versiona junto al
// código y aquí se verifica que siga siendo servible.
func TestSwaggerSpecShippedAndValid(t *testing.T) {
	raw, err := os.ReadFile("../../docs/swagger.json")
	require.NoError(t, err, "docs/swagger.json debe versionarse con el binario")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec))

	assert.Equal(t, "2.0", spec.Swagger)
	for _, route := range []string{
		"/health",
		"/api/products",
		"/api/sales",
		"/api/supplies",
		"/api/purchase-orders",
		"/api/inventory/adjustments",
		"/api/inventory/conversions",
	} {
		assert.Contains(t, spec.Paths, route)
	}
}
