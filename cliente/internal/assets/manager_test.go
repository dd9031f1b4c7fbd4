package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchToken(t *testing.T) {
	tests := []struct {
		pattern string
		query   string
		want    bool
	}{
		{"*", "anything", true},
		{"block:*", "block:woodbucket", true},
		{"block:woodbucket*", "block:woodbucket-oak", true},
		{"block:woodbucket*", "block:claypot", false},
		{"item:*", "block:woodbucket", false},
		{"block:woodbucket", "block:woodbucket-oak", false},
		{"block:*", "block", false},
	}

	for _, tt := range tests {
		got := matchToken(tt.pattern, tt.query)
		if got != tt.want {
			t.Errorf("matchToken(%q, %q) = %v, want %v", tt.pattern, tt.query, got, tt.want)
		}
	}
}

func TestSpecificityScore(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"*", 0},
		{"block:*", 2},
		{"block:woodbucket*", 3},
		{"block:woodbucket", 4},
	}

	for _, tt := range tests {
		got := specificityScore(tt.pattern)
		if got != tt.want {
			t.Errorf("specificityScore(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestManagerResolvesShapes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shapes.json"), `{
		"blockShapes": [
			{"shape": "generic/box", "tokens": ["block:*"]},
			{"shape": "winch/bucket", "tokens": ["block:woodbucket*"]}
		],
		"named_shapes": {"drum": "winch/drum"}
	}`)
	writeFile(t, filepath.Join(dir, "shapes", "winch", "bucket.json"),
		`{"textures": {"wood": "oak"}, "elements": [{"from": [0,0,0], "to": [16,8,16], "faces": {"up": {"texture": "#wood", "uv": [0,0,16,16]}}}]}`)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := m.BlockShape("woodbucket"); !ok || p != "winch/bucket" {
		t.Errorf("BlockShape(woodbucket) = %q, %v", p, ok)
	}
	if p, ok := m.BlockShape("claypot"); !ok || p != "generic/box" {
		t.Errorf("BlockShape(claypot) = %q, %v", p, ok)
	}
	if _, ok := m.ItemShape("woodbucket"); ok {
		t.Error("sem regras de item nada deveria casar")
	}
	if p, ok := m.NamedShape("drum"); !ok || p != "winch/drum" {
		t.Errorf("NamedShape(drum) = %q, %v", p, ok)
	}

	s, err := m.ShapeAt("winch/bucket")
	if err != nil {
		t.Fatal(err)
	}
	if again, _ := m.ShapeAt("winch/bucket"); again != s {
		t.Error("ShapeAt deveria usar o cache")
	}
	if _, err := m.ShapeAt("winch/inexistente"); err == nil {
		t.Error("shape inexistente deveria falhar")
	}
}
