// Package printer imprime etiquetas en impresoras térmicas: plantillas .prn con tokens
// (VItemCode, VBatch, ...) sustituidos y enviados en ISO-8859-1 por socket TCP crudo.
package printer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/wms-sap-api/internal/domain"
)

const templateExt = ".prn"

// Templates cache de plantillas .prn leídas de un directorio.
type Templates struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]string
}

// NewTemplates construye el cache sobre dir.
func NewTemplates(dir string) *Templates {
	return &Templates{dir: dir, cache: make(map[string]string)}
}

// Get devuelve la plantilla como texto UTF-8. name es el nombre sin extensión.
func (t *Templates) Get(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), templateExt)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: plantilla %q", domain.ErrInvalidInput, name)
	}

	t.mu.RLock()
	tpl, ok := t.cache[name]
	t.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	raw, err := os.ReadFile(filepath.Join(t.dir, name+templateExt))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: plantilla %q", domain.ErrNotFound, name)
		}
		return "", fmt.Errorf("leer plantilla %s: %w", name, err)
	}
	// Los .prn se guardan en Latin-1.
	tpl, err = charmap.ISO8859_1.NewDecoder().String(string(raw))
	if err != nil {
		return "", fmt.Errorf("decodificar plantilla %s: %w", name, err)
	}

	t.mu.Lock()
	t.cache[name] = tpl
	t.mu.Unlock()
	return tpl, nil
}

// Render sustituye los tokens y codifica el resultado en ISO-8859-1. Los tokens más
// largos se reemplazan primero para que VItem no pise VItemCode. Los caracteres sin
// representación en Latin-1 se cambian por '?'.
func Render(tpl string, values map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, values[k])
	}
	text := strings.NewReplacer(pairs...).Replace(tpl)

	text = strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, text)
	out, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("codificar etiqueta: %w", err)
	}
	return []byte(out), nil
}
