package language

import (
	"unsafe"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// JavaScript returns the tree-sitter language used for every input file.
func JavaScript() *sitter.Language {
	return sitter.NewLanguage(unsafe.Pointer(javascript.Language()))
}
