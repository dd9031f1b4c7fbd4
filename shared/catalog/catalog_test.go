package catalog

import (
	"testing"

	"WinchWorks/shared/items"
)

const sampleYAML = `
containers:
  - code: woodbucket
    class: block
    capacity_litres: 10
liquids:
  - code: waterportion
    items_per_litre: 100
    texture: water
    color: [60, 110, 200, 200]
    climate_color_map: climateWaterTint
liquid_containers: ["woodbucket*"]
starter_item: woodbucket
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Containers) != 1 || c.Containers[0].CapacityLitres != 10 {
		t.Fatalf("containers inesperados: %+v", c.Containers)
	}
	water := c.Liquid("waterportion")
	if water == nil || water.ItemsPerLitre != 100 || water.Color != [4]uint8{60, 110, 200, 200} {
		t.Fatalf("líquido inesperado: %+v", water)
	}
}

func TestParseRejectsZeroItemsPerLitre(t *testing.T) {
	_, err := Parse([]byte("liquids:\n  - code: x\n"))
	if err == nil {
		t.Fatal("esperava erro para items_per_litre ausente")
	}
}

func TestIsLiquidContainer(t *testing.T) {
	c := Default()
	tests := []struct {
		code string
		want bool
	}{
		{"woodbucket", true},
		{"woodbucket-filled", true},
		{"temporalbucket", true},
		{"claypot", false},
		{"bucket", false},
	}
	for _, tt := range tests {
		got := c.IsLiquidContainer(items.New(items.ClassBlock, tt.code, 1))
		if got != tt.want {
			t.Errorf("IsLiquidContainer(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestFillWith(t *testing.T) {
	c := Default()
	bucket := c.NewStack("woodbucket")
	if !c.FillWith(bucket, "waterportion", 10) {
		t.Fatal("balde vazio deveria encher")
	}
	if bucket.Contents.StackSize != 1000 {
		t.Fatalf("StackSize = %d, want 1000", bucket.Contents.StackSize)
	}
	if c.FillWith(bucket, "waterportion", 10) {
		t.Fatal("balde cheio não deveria encher de novo")
	}
	if c.FillWith(c.NewStack("claypot"), "waterportion", 10) {
		t.Fatal("pote de barro não é recipiente de líquido")
	}
	if got := c.CapacityLitres(items.New(items.ClassItem, "unknown", 1), 7); got != 7 {
		t.Fatalf("fallback de capacidade = %v", got)
	}
}
