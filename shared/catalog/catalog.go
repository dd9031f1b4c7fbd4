package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"WinchWorks/shared/items"
)

// LiquidProps descreve como um líquido é contido e desenhado dentro de um recipiente.
type LiquidProps struct {
	Code            string   `yaml:"code"`
	ItemsPerLitre   float32  `yaml:"items_per_litre"`
	IsOpaque        bool     `yaml:"opaque"`
	Texture         string   `yaml:"texture"`
	Color           [4]uint8 `yaml:"color"`
	ClimateColorMap string   `yaml:"climate_color_map,omitempty"`
}

// ContainerDef descreve um recipiente que pode ser pendurado no guincho.
type ContainerDef struct {
	Code           string  `yaml:"code"`
	Class          string  `yaml:"class"` // "item" ou "block"
	CapacityLitres float32 `yaml:"capacity_litres"`
}

// Catalog agrupa recipientes, líquidos e os padrões de recipientes que exibem líquido.
type Catalog struct {
	Containers       []ContainerDef `yaml:"containers"`
	Liquids          []LiquidProps  `yaml:"liquids"`
	LiquidContainers []string       `yaml:"liquid_containers"`
	StarterItem      string         `yaml:"starter_item"`
}

// Load lê o catálogo YAML.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodifica um catálogo a partir de bytes YAML.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog.yaml: %w", err)
	}
	for _, l := range c.Liquids {
		if l.ItemsPerLitre <= 0 {
			return nil, fmt.Errorf("catalog.yaml: líquido %q sem items_per_litre", l.Code)
		}
	}
	return &c, nil
}

// Default retorna o catálogo embutido usado quando assets/catalog.yaml não existe.
func Default() *Catalog {
	return &Catalog{
		Containers: []ContainerDef{
			{Code: "woodbucket", Class: "block", CapacityLitres: 10},
			{Code: "temporalbucket", Class: "block", CapacityLitres: 10},
			{Code: "claypot", Class: "block", CapacityLitres: 6},
		},
		Liquids: []LiquidProps{
			{Code: "waterportion", ItemsPerLitre: 100, Texture: "water", Color: [4]uint8{60, 110, 200, 200}, ClimateColorMap: "climateWaterTint"},
			{Code: "saltwaterportion", ItemsPerLitre: 100, Texture: "saltwater", Color: [4]uint8{70, 120, 190, 200}, ClimateColorMap: "climateWaterTint"},
			{Code: "milkportion", ItemsPerLitre: 100, IsOpaque: true, Texture: "milk", Color: [4]uint8{245, 245, 235, 255}},
		},
		LiquidContainers: []string{"woodbucket*", "temporalbucket*"},
		StarterItem:      "woodbucket",
	}
}

// LoadOrDefault carrega o catálogo ou cai no padrão embutido.
func LoadOrDefault(path string) *Catalog {
	c, err := Load(path)
	if err != nil {
		return Default()
	}
	return c
}

// ContainableProps retorna as propriedades do líquido contido, ou nil se desconhecido.
func (c *Catalog) ContainableProps(contents *items.ItemStack) *LiquidProps {
	if contents == nil {
		return nil
	}
	for i := range c.Liquids {
		if c.Liquids[i].Code == contents.Code {
			return &c.Liquids[i]
		}
	}
	return nil
}

// Liquid busca um líquido pelo código.
func (c *Catalog) Liquid(code string) *LiquidProps {
	for i := range c.Liquids {
		if c.Liquids[i].Code == code {
			return &c.Liquids[i]
		}
	}
	return nil
}

// Container busca a definição do recipiente de uma pilha.
func (c *Catalog) Container(stack *items.ItemStack) *ContainerDef {
	if stack == nil {
		return nil
	}
	for i := range c.Containers {
		if c.Containers[i].Code == stack.Code {
			return &c.Containers[i]
		}
	}
	return nil
}

// CapacityLitres retorna a capacidade do recipiente ou fallback quando ele não é conhecido.
func (c *Catalog) CapacityLitres(stack *items.ItemStack, fallback float32) float32 {
	if def := c.Container(stack); def != nil && def.CapacityLitres > 0 {
		return def.CapacityLitres
	}
	return fallback
}

// IsLiquidContainer indica se o código do recipiente casa com algum padrão de recipiente de líquido.
// Um '*' final casa qualquer sufixo.
func (c *Catalog) IsLiquidContainer(stack *items.ItemStack) bool {
	if stack == nil {
		return false
	}
	for _, pat := range c.LiquidContainers {
		if prefix, ok := strings.CutSuffix(pat, "*"); ok {
			if strings.HasPrefix(stack.Code, prefix) {
				return true
			}
		} else if pat == stack.Code {
			return true
		}
	}
	return false
}

// NewStack cria uma pilha de um recipiente conhecido.
func (c *Catalog) NewStack(code string) *items.ItemStack {
	for _, def := range c.Containers {
		if def.Code == code {
			class := items.ClassBlock
			if def.Class == "item" {
				class = items.ClassItem
			}
			return items.New(class, code, 1)
		}
	}
	return nil
}

// FillWith enche um recipiente de líquido até a capacidade. Retorna false se não couber.
func (c *Catalog) FillWith(stack *items.ItemStack, liquidCode string, fallbackCapacity float32) bool {
	props := c.Liquid(liquidCode)
	if props == nil || !c.IsLiquidContainer(stack) {
		return false
	}
	full := int(props.ItemsPerLitre * c.CapacityLitres(stack, fallbackCapacity))
	if stack.Contents != nil && stack.Contents.Code == liquidCode && stack.Contents.StackSize >= full {
		return false
	}
	stack.Contents = items.New(items.ClassItem, liquidCode, full)
	return true
}
