package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal state directory kept next to the config file.
	StateDirName = ".unbundle"

	// StoreDirName is the name of the emit record store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "unbundle.yaml"

	// EnvFileName is the name of the optional environment override file.
	EnvFileName = ".env"

	// VendorDirName is the directory segment that marks a vendored package.
	VendorDirName = "node_modules"

	// BinDirName is the tool binaries directory inside the vendor root.
	BinDirName = ".bin"

	// ManifestFileName is the name of a package manifest.
	ManifestFileName = "package.json"

	// DefaultEntryFile is the entry used when a manifest declares none.
	DefaultEntryFile = "index.js"

	// EntryField is the manifest field the runtime reads to locate a package entry.
	EntryField = "main"

	// NativeLoaderIdent is the runtime's own module loading function.
	NativeLoaderIdent = "require"

	// BundlerLoaderIdent is the bundler runtime's module loading function.
	BundlerLoaderIdent = "__webpack_require__"

	// BundlerAMDMarker prefixes identifiers the bundler synthesizes for AMD define wrappers.
	BundlerAMDMarker = "__WEBPACK_AMD_DEFINE_"

	// ScriptExt is the extension given to emitted script units.
	ScriptExt = ".js"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the default path for the emit record store.
// It joins .unbundle and store.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, StoreDirName)
}
