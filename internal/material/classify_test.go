package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarulanda/marqueteria/internal/material"
)

func TestClassifier_Classify(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  material.Category
	}

	tests := []testCase{
		{name: "Glass", input: "Vidrio 3mm", want: material.CategoryGlass},
		{name: "Mirror", input: "ESPEJO 4mm bronce", want: material.CategoryGlass},
		{name: "BackingMDF", input: "MDF 5mm", want: material.CategoryBacking},
		{name: "BackingTriplex", input: "Triplex económico", want: material.CategoryBacking},
		{name: "Matboard", input: "Paspartú blanco hueso", want: material.CategoryMatboard},
		{name: "MatboardCarton", input: "cartón industrial", want: material.CategoryMatboard},
		{name: "Foam", input: "Foam board 5mm", want: material.CategoryFoam},
		{name: "FoamIcopor", input: "Lámina icopor", want: material.CategoryFoam},
		{name: "Fabric", input: "Lienzo belga", want: material.CategoryFabric},
		{name: "Frame", input: "Moldura cedro 2cm", want: material.CategoryFrame},
		{name: "FrameMarco", input: "marco plano negro", want: material.CategoryFrame},
		{name: "Unknown", input: "Silicona transparente", want: material.CategoryOther},
		{name: "Empty", input: "", want: material.CategoryOther},
	}

	c := material.NewClassifier()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input))
		})
	}
}

// "Chapilla de marco" mentions both a veneer and a frame; the veneer rule
// runs first and must win.
func TestClassifier_VeneerBeforeFrame(t *testing.T) {
	c := material.NewClassifier()

	assert.Equal(t, material.CategoryVeneer, c.Classify("Chapilla para marco"))
}
