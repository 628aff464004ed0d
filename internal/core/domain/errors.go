package domain

import "go.trai.ch/zerr"

var (
	// ErrModuleAlreadyExists is returned when a module with the same ID is added to a graph twice.
	ErrModuleAlreadyExists = zerr.New("module already exists")

	// ErrModuleNotFound is returned when an entry or edge refers to a module that is not in the graph.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrNoEntries is returned when a build is started without any entry modules.
	ErrNoEntries = zerr.New("no entries configured")

	// ErrUnresolvableReference is returned when a reference that must point at a real file
	// cannot be resolved with the runtime's module resolution algorithm.
	ErrUnresolvableReference = zerr.New("unresolvable module reference")

	// ErrOverlappingEdits is returned when two replacement edits partially overlap.
	ErrOverlappingEdits = zerr.New("overlapping replacement edits")

	// ErrEditOutOfRange is returned when a replacement edit lies outside the module source.
	ErrEditOutOfRange = zerr.New("replacement edit out of range")

	// ErrPhaseOrder is returned when pipeline phases are invoked out of order.
	ErrPhaseOrder = zerr.New("pipeline phase invoked out of order")

	// ErrUnitNotFound is returned when a unit path is not part of the current partition.
	ErrUnitNotFound = zerr.New("output unit not found")

	// ErrManifestReadFailed is returned when a package manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestParseFailed is returned when a package manifest is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrManifestRewriteFailed is returned when the entry field of a manifest cannot be rewritten.
	ErrManifestRewriteFailed = zerr.New("failed to rewrite package manifest")

	// ErrProjectManifestMissing is reported when the dependency closure is requested
	// but the project has no package manifest.
	ErrProjectManifestMissing = zerr.New("project package manifest not found")

	// ErrCopyFailed is returned when a directory tree cannot be copied into the output.
	ErrCopyFailed = zerr.New("failed to copy directory tree")

	// ErrWriteFailed is returned when an output file cannot be written.
	ErrWriteFailed = zerr.New("failed to write output file")

	// ErrSourceReadFailed is returned when a module source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read module source")

	// ErrStoreCreateFailed is returned when the emit store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create emit store directory")

	// ErrStoreReadFailed is returned when an emit record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read emit record")

	// ErrStoreUnmarshalFailed is returned when an emit record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal emit record")

	// ErrStoreMarshalFailed is returned when an emit record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal emit record")

	// ErrStoreWriteFailed is returned when an emit record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write emit record")

	// ErrConfigNotFound is returned when no configuration file is found.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileReadFailed is returned when the .env override file exists but cannot be parsed.
	ErrEnvFileReadFailed = zerr.New("failed to read env override file")

	// ErrInvalidEntry is returned when a configured entry path is empty or escapes the project root.
	ErrInvalidEntry = zerr.New("invalid entry")

	// ErrBuildFailed is returned when a build pass fails.
	// The cause has already been reported when this error surfaces.
	ErrBuildFailed = zerr.New("build failed")
)
