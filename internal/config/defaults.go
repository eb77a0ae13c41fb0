package config

import (
	_ "embed"
)

//go:embed defaults/painter.yaml
var defaultModConfig []byte

//go:embed defaults/items.yaml
var defaultCatalog []byte

// DefaultModConfig returns the painter.yaml written by `painter init`.
func DefaultModConfig() []byte {
	return append([]byte(nil), defaultModConfig...)
}

// DefaultCatalog returns the items.yaml written by `painter init`.
func DefaultCatalog() []byte {
	return append([]byte(nil), defaultCatalog...)
}
