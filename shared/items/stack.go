package items

import "maps"

// ItemClass distingue itens de blocos (caminhos de tesselação diferentes).
type ItemClass uint8

const (
	ClassUnknown ItemClass = iota
	ClassItem
	ClassBlock
)

func (c ItemClass) String() string {
	switch c {
	case ClassItem:
		return "item"
	case ClassBlock:
		return "block"
	default:
		return "unknown"
	}
}

// IgnoredAttributes são atributos voláteis que não mudam a identidade visual de uma pilha
// (temperatura, estado de decomposição, etc.).
var IgnoredAttributes = []string{"temperature", "transitionstate", "timeFrozen", "toolMode", "renderVariant"}

// ItemStack é uma pilha de itens ou blocos.
// Contents é o conteúdo de um recipiente (slot 0 da árvore "contents" original), nil quando vazio.
type ItemStack struct {
	Class      ItemClass
	Code       string
	StackSize  int
	Attributes map[string]string
	Contents   *ItemStack
}

// New cria uma pilha simples sem atributos.
func New(class ItemClass, code string, size int) *ItemStack {
	return &ItemStack{Class: class, Code: code, StackSize: size}
}

// Resolved indica se a pilha aponta para algo conhecido (classe resolvida).
func (s *ItemStack) Resolved() bool {
	return s != nil && s.Class != ClassUnknown && s.Code != ""
}

// HasContents indica se o recipiente carrega uma pilha interna.
func (s *ItemStack) HasContents() bool {
	return s != nil && s.Contents != nil
}

// Clone cria uma cópia profunda. Os caches guardam clones, nunca a pilha viva do slot.
func (s *ItemStack) Clone() *ItemStack {
	if s == nil {
		return nil
	}
	c := &ItemStack{
		Class:     s.Class,
		Code:      s.Code,
		StackSize: s.StackSize,
		Contents:  s.Contents.Clone(),
	}
	if len(s.Attributes) > 0 {
		c.Attributes = maps.Clone(s.Attributes)
	}
	return c
}

// Equals compara duas pilhas ignorando os atributos listados em ignore.
// Duas pilhas nil são iguais; nil e não-nil nunca são.
func (s *ItemStack) Equals(other *ItemStack, ignore []string) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	if s.Class != other.Class || s.Code != other.Code || s.StackSize != other.StackSize {
		return false
	}
	if !attributesEqual(s.Attributes, other.Attributes, ignore) {
		return false
	}
	return s.Contents.Equals(other.Contents, ignore)
}

// SameAs é Equals com o conjunto padrão de atributos ignorados.
func (s *ItemStack) SameAs(other *ItemStack) bool {
	return s.Equals(other, IgnoredAttributes)
}

func attributesEqual(a, b map[string]string, ignore []string) bool {
	skip := func(k string) bool {
		for _, ig := range ignore {
			if ig == k {
				return true
			}
		}
		return false
	}
	for k, v := range a {
		if skip(k) {
			continue
		}
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	for k := range b {
		if skip(k) {
			continue
		}
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}
