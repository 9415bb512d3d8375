package discovery

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is returned by Environments for a path that is not a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// PathNotFoundError indicates a command line path that does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path '%s' does not exist", e.Path)
}
