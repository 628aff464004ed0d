package ports

// Hasher computes content hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashBytes returns the hex hash of data.
	HashBytes(data []byte) string

	// HashFile returns the hex hash of the file at path.
	HashFile(path string) (string, error)
}
