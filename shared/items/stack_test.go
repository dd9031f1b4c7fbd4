package items

import "testing"

func bucketWith(liquid string, size int, temp string) *ItemStack {
	b := New(ClassBlock, "woodbucket", 1)
	b.Contents = New(ClassItem, liquid, size)
	b.Contents.Attributes = map[string]string{"temperature": temp}
	return b
}

func TestEqualsIgnoresVolatileAttributes(t *testing.T) {
	a := bucketWith("waterportion", 100, "20")
	b := bucketWith("waterportion", 100, "35")
	if !a.SameAs(b) {
		t.Fatal("pilhas que diferem só em temperatura deveriam ser iguais")
	}
	if a.Equals(b, nil) {
		t.Fatal("sem conjunto de ignorados a temperatura deveria contar")
	}
}

func TestEqualsDetectsRealChanges(t *testing.T) {
	base := bucketWith("waterportion", 100, "20")
	tests := []struct {
		name   string
		mutate func(s *ItemStack)
	}{
		{"quantidade do conteúdo", func(s *ItemStack) { s.Contents.StackSize = 50 }},
		{"código do conteúdo", func(s *ItemStack) { s.Contents.Code = "milkportion" }},
		{"sem conteúdo", func(s *ItemStack) { s.Contents = nil }},
		{"classe", func(s *ItemStack) { s.Class = ClassItem }},
		{"atributo relevante", func(s *ItemStack) { s.Attributes = map[string]string{"color": "red"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base.Clone()
			tt.mutate(other)
			if base.SameAs(other) {
				t.Errorf("mudança %q não detectada", tt.name)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := bucketWith("waterportion", 100, "20")
	c := a.Clone()
	c.Contents.StackSize = 1
	c.Contents.Attributes["temperature"] = "99"
	if a.Contents.StackSize != 100 || a.Contents.Attributes["temperature"] != "20" {
		t.Fatal("Clone compartilha memória com o original")
	}
	var nilStack *ItemStack
	if nilStack.Clone() != nil || !nilStack.SameAs(nil) || nilStack.SameAs(a) {
		t.Fatal("semântica de nil incorreta")
	}
}
