package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed bright.csv
var brightCSV []byte

// BrightStars returns the built-in catalog of named naked-eye stars, used
// when no catalog file is given. B-V is filled in for the first-magnitude
// stars only. Stars are ordered roughly by magnitude, brightest first.
//
// The catalog is parsed once and shared; like every Catalog it is read-only.
func BrightStars() *Catalog {
	return brightStars()
}

var brightStars = sync.OnceValue(func() *Catalog {
	cat, err := Read(bytes.NewReader(brightCSV), LoadOptions{})
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in bright star table: %v", err))
	}
	return cat
})
