package ports

// OutputWriter writes emitted files below a target root.
//
//go:generate go run go.uber.org/mock/mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type OutputWriter interface {
	// Write stores data at the forward-slash path rel below root.
	// It reports false when the file already held identical content.
	Write(root, rel string, data []byte) (bool, error)
}
