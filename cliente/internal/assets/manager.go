package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"WinchWorks/cliente/internal/meshing"
)

// --- Estruturas JSON ---

// ShapeRule conecta códigos de itens/blocos a um shape
type ShapeRule struct {
	Shape   string   `json:"shape"`
	Tokens  []string `json:"tokens"`
	Comment string   `json:"comment,omitempty"`
}

// ShapesConfig é o root do shapes.json
type ShapesConfig struct {
	ItemShapes  []ShapeRule       `json:"itemShapes"`
	BlockShapes []ShapeRule       `json:"blockShapes"`
	NamedShapes map[string]string `json:"named_shapes"`
}

// --- Manager ---

// Manager é a estrutura central em memória que responde às consultas do tesselador
type Manager struct {
	dir         string
	itemShapes  []ShapeRule
	blockShapes []ShapeRule
	namedShapes map[string]string

	mu     sync.Mutex
	shapes map[string]*meshing.Shape
}

// NewManager carrega shapes.json do diretório de assets. Os shapes são lidos sob demanda.
func NewManager(dir string) (*Manager, error) {
	m := &Manager{
		dir:         dir,
		namedShapes: make(map[string]string),
		shapes:      make(map[string]*meshing.Shape),
	}

	data, err := os.ReadFile(filepath.Join(dir, "shapes.json"))
	if err != nil {
		return nil, fmt.Errorf("falha ao ler shapes.json: %w", err)
	}
	var conf ShapesConfig
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("falha ao parsear shapes.json: %w", err)
	}
	m.itemShapes = conf.ItemShapes
	m.blockShapes = conf.BlockShapes
	if conf.NamedShapes != nil {
		m.namedShapes = conf.NamedShapes
	}
	return m, nil
}

// ShapeAt retorna o shape em <dir>/shapes/<path>.json, com cache.
func (m *Manager) ShapeAt(path string) (*meshing.Shape, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.shapes[path]; ok {
		return s, nil
	}
	raw, err := os.ReadFile(filepath.Join(m.dir, "shapes", filepath.FromSlash(path)+".json"))
	if err != nil {
		return nil, err
	}
	s, err := meshing.ParseShape(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.shapes[path] = s
	return s, nil
}

// NamedShape retorna o caminho de um shape essencial (ex.: "drum").
func (m *Manager) NamedShape(name string) (string, bool) {
	p, ok := m.namedShapes[name]
	return p, ok
}

// ItemShape retorna o shape mais específico para um item.
func (m *Manager) ItemShape(code string) (string, bool) {
	return bestShape(m.itemShapes, "item:"+code)
}

// BlockShape retorna o shape mais específico para um bloco.
func (m *Manager) BlockShape(code string) (string, bool) {
	return bestShape(m.blockShapes, "block:"+code)
}

func bestShape(rules []ShapeRule, token string) (string, bool) {
	best := ""
	bestScore := -1
	for _, r := range rules {
		for _, pat := range r.Tokens {
			if matchToken(pat, token) {
				if score := specificityScore(pat); score > bestScore {
					bestScore = score
					best = r.Shape
				}
			}
		}
	}
	return best, bestScore >= 0
}

// --- Wildcard Matching ---

// matchToken compara um token de consulta contra um padrão com suporte a wildcards.
// Formato do token: "CLASSE:CÓDIGO". Um segmento "*" aceita qualquer valor;
// um segmento terminado em "*" casa por prefixo ("woodbucket*").
func matchToken(pattern, query string) bool {
	if pattern == "*" {
		return true
	}

	patParts := strings.Split(pattern, ":")
	queryParts := strings.Split(query, ":")
	if len(patParts) != len(queryParts) {
		return false
	}

	for i := range patParts {
		if prefix, ok := strings.CutSuffix(patParts[i], "*"); ok {
			if !strings.HasPrefix(queryParts[i], prefix) {
				return false
			}
			continue
		}
		if patParts[i] != queryParts[i] {
			return false
		}
	}
	return true
}

// specificityScore calcula a "especificidade" de um padrão.
// Segmento exato vale 2, prefixo vale 1, "*" vale 0.
func specificityScore(pattern string) int {
	if pattern == "*" {
		return 0
	}
	score := 0
	for _, p := range strings.Split(pattern, ":") {
		switch {
		case p == "*":
		case strings.HasSuffix(p, "*"):
			score++
		default:
			score += 2
		}
	}
	return score
}

var _ meshing.ShapeSource = (*Manager)(nil)
