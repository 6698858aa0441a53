package palette

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// document is a decoded TOML file that remembers the order keys were declared in.
type document struct {
	file  string
	data  map[string]any
	order map[string][]string // dotted table path -> child keys in file order
}

func readDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseDocument(path, string(data))
}

func parseDocument(file, text string) (*document, error) {
	raw := map[string]any{}
	md, err := toml.Decode(text, &raw)
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	doc := &document{file: file, data: raw, order: map[string][]string{}}
	seen := map[string]bool{}
	for _, key := range md.Keys() {
		for depth := 0; depth < len(key); depth++ {
			parent := strings.Join(key[:depth], ".")
			child := parent + "\x00" + key[depth]
			if seen[child] {
				continue
			}
			seen[child] = true
			doc.order[parent] = append(doc.order[parent], key[depth])
		}
	}
	return doc, nil
}

// keys returns the keys of m in declaration order. Keys the metadata does
// not know about (there should be none) are appended sorted.
func (d *document) keys(path []string, m map[string]any) []string {
	if d == nil {
		return sortedKeys(m)
	}
	ordered := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))
	for _, k := range d.order[strings.Join(path, ".")] {
		if _, ok := m[k]; ok && !used[k] {
			ordered = append(ordered, k)
			used[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// table returns the sub-table at key, or nil if absent.
func table(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, syntaxErrorf("'%s' must be a table", key)
	}
	return t, nil
}

// flatten walks nested tables and records string leaves under dotted keys,
// in declaration order.
func (d *document) flatten(path []string, m map[string]any, into *ordered[string]) error {
	for _, k := range d.keys(path, m) {
		full := append(append([]string{}, path...), k)
		switch v := m[k].(type) {
		case string:
			into.set(strings.Join(full[1:], "."), v)
		case map[string]any:
			if err := d.flatten(full, v, into); err != nil {
				return err
			}
		default:
			return syntaxErrorf("%s: '%s' must be a string", full[0], strings.Join(full[1:], "."))
		}
	}
	return nil
}

// ordered is a small insertion-ordered map; later sets overwrite the value
// but keep the original position.
type ordered[V any] struct {
	keys   []string
	values map[string]V
}

func newOrdered[V any]() *ordered[V] {
	return &ordered[V]{values: map[string]V{}}
}

func (o *ordered[V]) set(k string, v V) {
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

func (o *ordered[V]) get(k string) (V, bool) {
	v, ok := o.values[k]
	return v, ok
}

func (o *ordered[V]) len() int { return len(o.keys) }
