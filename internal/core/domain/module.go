package domain

import (
	"path/filepath"
	"strings"
)

// ModuleKind is the closed set of module variants the renderer knows how to emit.
type ModuleKind uint8

const (
	// KindScript is a compiled script module.
	KindScript ModuleKind = iota
	// KindJSONData is a JSON data module emitted verbatim.
	KindJSONData
	// KindStyle is a style sheet. Its references are not runtime references.
	KindStyle
	// KindStaticAsset is a binary or text asset exported by URL.
	KindStaticAsset
	// KindExternal is a module resolved outside the graph, such as a runtime built-in.
	KindExternal
)

// String returns the lower-case name of the kind.
func (k ModuleKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindJSONData:
		return "json"
	case KindStyle:
		return "style"
	case KindStaticAsset:
		return "asset"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

var scriptExts = map[string]bool{
	"":     true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".es6": true,
	".ts":  true,
	".tsx": true,
}

var styleExts = map[string]bool{
	".css":  true,
	".less": true,
	".scss": true,
	".sass": true,
	".styl": true,
}

// KindOf returns the kind of the module at path based on its extension.
// It never returns KindExternal; externals are flagged by the loader.
func KindOf(path string) ModuleKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case scriptExts[ext]:
		return KindScript
	case ext == ".json":
		return KindJSONData
	case styleExts[ext]:
		return KindStyle
	default:
		return KindStaticAsset
	}
}

// IsScriptExt reports whether ext (including the dot) is compiled to a script unit.
func IsScriptExt(ext string) bool {
	return scriptExts[strings.ToLower(ext)]
}

// OutputName maps a source-relative name to the name it is emitted under.
// Scripts always end in .js; every other kind keeps its extension.
func OutputName(name string, kind ModuleKind) string {
	if kind != KindScript {
		return name
	}
	ext := filepath.Ext(name)
	if !IsScriptExt(ext) {
		return name + ScriptExt
	}
	return strings.TrimSuffix(name, ext) + ScriptExt
}

// Asset is a generated static-asset output owned by a module.
type Asset struct {
	// URL is the asset location relative to the public path.
	URL string
}

// Range is a half-open byte range [Start, End) in a module's source text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether o lies entirely within r.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Overlaps reports whether r and o share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// EditOrigin records which compiler construct produced a replacement edit.
type EditOrigin uint8

const (
	// OriginPlain is an ordinary replacement.
	OriginPlain EditOrigin = iota
	// OriginVarInjection marks edits produced by the bundler's variable-injection wrapper.
	OriginVarInjection
	// OriginAMDDefine marks edits synthesized for AMD-style define calls.
	OriginAMDDefine
)

// Replacement is a pending text edit against a module's source.
type Replacement struct {
	Range   Range
	Content string
	Origin  EditOrigin
}

// ModuleRecord is a compiled module as produced by the front-end.
type ModuleRecord struct {
	// ID is the interned absolute source path.
	ID ModuleID
	// Path is the absolute source path with any loader prefix removed.
	Path string
	// Request is the raw request that first introduced the module.
	Request string
	// OriginUnit is the name of the unit the compiler placed the module in.
	OriginUnit string
	// Assets lists the static-asset outputs the module owns.
	Assets []Asset
	// External is set for modules resolved outside the graph.
	External bool
	// Kind selects the rendering strategy.
	Kind ModuleKind
	// Source is the UTF-8 text emitted by the compiler.
	Source []byte
	// Edits are the compiler's replacement edits for loader call sites.
	Edits []Replacement
}

// ReferenceEdge is one cross-module reference in a module's source.
type ReferenceEdge struct {
	// Owner is the module whose text contains the reference.
	Owner ModuleID
	// Range covers the request string literal, quotes included.
	Range Range
	// CallRange covers the whole loader call expression.
	CallRange Range
	// Target is the referenced module. It is zero when the request could not be resolved.
	Target ModuleID
	// Request is the request text as written in the source.
	Request string
}
