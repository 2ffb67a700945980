package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed seed/glp360.yaml
var seedYAML []byte

// defaultCatalog is the built-in GLP-1 360 catalog, set by init().
var defaultCatalog *Catalog

func init() {
	c, err := Parse(seedYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	defaultCatalog = c
}

// Default returns the built-in GLP-1 360 catalog.
func Default() *Catalog {
	return defaultCatalog
}

// SeedDocument returns the raw built-in catalog, for export.
func SeedDocument() []byte {
	out := make([]byte, len(seedYAML))
	copy(out, seedYAML)
	return out
}
