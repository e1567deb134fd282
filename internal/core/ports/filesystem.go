package ports

import "time"

// FileSystem exposes the read-only metadata queries the staleness policy needs.
// Implementations must not cache results between calls.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Exists reports whether path exists. A missing path is not an error.
	Exists(path string) (bool, error)
	// LastModified returns the modification time of path.
	LastModified(path string) (time.Time, error)
	// IsDir reports whether path exists and is a directory. A missing path is not an error.
	IsDir(path string) (bool, error)
}
