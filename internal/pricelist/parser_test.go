package pricelist_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarulanda/marqueteria/internal/pricelist"
)

func TestParser_Parse(t *testing.T) {
	csv := `Lista de precios - Distribuidora El Marco S.A.S.;;;
Vigencia;Marzo 2026;;

MATERIAL;ANCHO_CM;LARGO_CM;PRECIO;CANTIDAD
Vidrio 3mm;183;244;131.378;1
MDF 5mm;183;244;$ 45.900;2
Moldura cedro;;300;15.000;
`

	p := pricelist.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Vidrio 3mm", rows[0].Name)
	assert.Equal(t, 183.0, rows[0].WidthCM)
	assert.Equal(t, 244.0, rows[0].LengthCM)
	assert.Equal(t, int64(131378), rows[0].SheetPrice)
	assert.Equal(t, 1, rows[0].SheetCount)

	assert.Equal(t, int64(45900), rows[1].SheetPrice)
	assert.Equal(t, 2, rows[1].SheetCount)

	assert.Zero(t, rows[2].WidthCM)
	assert.Equal(t, 300.0, rows[2].LengthCM)
	assert.Equal(t, 1, rows[2].SheetCount)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `PRECIO;MATERIAL;Ignored
25.000;Paspartú blanco;XXX
`

	p := pricelist.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Paspartú blanco", rows[0].Name)
	assert.Equal(t, int64(25000), rows[0].SheetPrice)
}

func TestParser_DecimalComma(t *testing.T) {
	csv := `MATERIAL;ANCHO_CM;LARGO_CM;PRECIO
Vidrio 2mm;183,5;244;98.500,60
`

	p := pricelist.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 183.5, rows[0].WidthCM)
	// 98.500,60 rounds to whole pesos.
	assert.Equal(t, int64(98501), rows[0].SheetPrice)
}

func TestParser_SkipsBadRows(t *testing.T) {
	csv := `MATERIAL;PRECIO
Vidrio 3mm;131.378
;50.000
Sin precio;
Regalo;0
TOTAL;177.378
`

	p := pricelist.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	// Blank name, blank price and zero price rows are dropped. The totals
	// row parses as a material; culling it is the reviewer's job on import.
	require.Len(t, rows, 2)
	assert.Equal(t, "Vidrio 3mm", rows[0].Name)
	assert.Equal(t, "TOTAL", rows[1].Name)
}

func TestParser_NoHeader(t *testing.T) {
	p := pricelist.NewParser()
	_, err := p.Parse(strings.NewReader("solo texto\nsin columnas\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParser_HeaderOnly(t *testing.T) {
	p := pricelist.NewParser()
	rows, err := p.Parse(strings.NewReader("MATERIAL;ANCHO_CM;LARGO_CM;PRECIO;CANTIDAD\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
