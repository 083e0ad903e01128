package duplex

import (
	"fmt"
	"os"
)

// FileError is returned when a file or directory the workflow depends on
// is missing.
type FileError struct {
	// Path that's missing
	Path string

	// Hint for the user
	Hint string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("could not open file %s: %s", e.Path, e.Hint)
}

// ParamError is returned for an invalid command line parameter.
type ParamError struct {
	Msg string
}

func (e *ParamError) Error() string {
	return "invalid value: " + e.Msg
}

// requireFile returns a *FileError if nothing exists at path.
func requireFile(path, hint string) error {
	if _, err := os.Stat(path); err != nil {
		return &FileError{Path: path, Hint: hint}
	}
	return nil
}

// requireDir returns a *FileError unless path is an existing directory.
func requireDir(path, flag string) error {
	if path == "" {
		return &ParamError{Msg: fmt.Sprintf("--%s is required", flag)}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &FileError{Path: path, Hint: fmt.Sprintf("--%s directory does not exist", flag)}
	}
	if !info.IsDir() {
		return &FileError{Path: path, Hint: fmt.Sprintf("--%s is not a directory", flag)}
	}
	return nil
}
