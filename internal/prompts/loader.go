// Package prompts holds the model prompt catalogs. Each JSON file in
// this directory is a flat map of prompt key to prompt text, embedded
// at build time; text may carry {{.Name}} placeholders filled by
// Format. Every generation key has a matching "<key>-system" companion
// carrying the system message for that stage.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var catalogFS embed.FS

var (
	catalogMu sync.Mutex
	catalogs  map[string]map[string]string
)

// Get returns the prompt stored under key in the named catalog file.
func Get(filename, key string) (string, error) {
	entries, err := catalog(filename)
	if err != nil {
		return "", err
	}
	text, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompts: %s has no key %q", filename, key)
	}
	return text, nil
}

// MustGet is Get for prompts the program cannot run without.
func MustGet(filename, key string) string {
	text, err := Get(filename, key)
	if err != nil {
		panic(err)
	}
	return text
}

// List returns the keys of a catalog file in sorted order.
func List(filename string) ([]string, error) {
	entries, err := catalog(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format substitutes {{.Name}} placeholders with values from data.
// Placeholders without a value are left intact.
func Format(text string, data map[string]string) string {
	for name, value := range data {
		text = strings.ReplaceAll(text, "{{."+name+"}}", value)
	}
	return text
}

// ClearCache drops every parsed catalog.
func ClearCache() {
	catalogMu.Lock()
	catalogs = nil
	catalogMu.Unlock()
}

func catalog(filename string) (map[string]string, error) {
	catalogMu.Lock()
	defer catalogMu.Unlock()

	if entries, ok := catalogs[filename]; ok {
		return entries, nil
	}

	raw, err := catalogFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("prompts: read %s: %w", filename, err)
	}
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("prompts: parse %s: %w", filename, err)
	}

	if catalogs == nil {
		catalogs = make(map[string]map[string]string)
	}
	catalogs[filename] = entries
	return entries, nil
}
