package domain

// Manifest is a parsed package manifest.
type Manifest struct {
	// Path is the absolute path of the manifest file.
	Path string
	// Name is the declared package name, empty if absent.
	Name string
	// Dependencies lists the declared runtime dependency names in sorted order.
	Dependencies []string
	// Raw holds the manifest bytes as read from disk.
	Raw []byte
}

// VendorManifestEntry is a manifest staged for the output tree with a corrected entry field.
type VendorManifestEntry struct {
	// ManifestPath is the absolute source path and the staging key.
	ManifestPath string
	// PackageName is the declared name, or the package directory name when undeclared.
	PackageName string
	// Entry is the corrected entry value written into the manifest.
	Entry string
	// Destination is the sanitized output-relative path of the manifest.
	Destination string
	// Unit is the path of the unit whose module triggered staging.
	Unit string
	// Content is the manifest with its entry field rewritten.
	Content []byte
}
