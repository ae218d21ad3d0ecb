// Package errors provides standardized error handling for compactseq.
// It defines the typed failures a renumbering run can produce, constants
// for their kinds, and helper functions for consistent error creation,
// wrapping, and classification across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	InvalidStep
	InvalidPadding
	// Directory error kinds
	NotADirectory
	DirectoryUnreadable
	DirectoryUnwritable
	// Sequence error kinds
	DuplicateFrame
	// File operation error kinds
	IsolateFailed
	// Abort error kinds
	RestoreFailed
	PlaceFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ConfigError represents an invalid caller-supplied numbering parameter.
// It is always raised before any I/O has taken place.
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the numbering parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// DirectoryError represents a target directory that cannot be used: it is
// not a directory, its listing cannot be read, or it cannot be written.
// It is always raised before any file has been moved.
type DirectoryError struct {
	ApplicationError
	path string
}

// NewDirectoryError creates a new directory error
func NewDirectoryError(msg string, path string, kind ErrorKind, err error) *DirectoryError {
	return &DirectoryError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the directory error message
func (e *DirectoryError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the directory path associated with the error
func (e *DirectoryError) Path() string {
	return e.path
}

// SequenceError indicates that a sequence is poorly formed and cannot be
// renumbered. It carries the sequence signature (name.#.ext) and the two
// conflicting filenames. Raised during plan generation, before any
// filesystem mutation.
type SequenceError struct {
	ApplicationError
	signature string
	files     [2]string
}

// NewSequenceError creates a new malformed-sequence error
func NewSequenceError(msg string, signature string, first, second string) *SequenceError {
	return &SequenceError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: DuplicateFrame,
		},
		signature: signature,
		files:     [2]string{first, second},
	}
}

// Error returns the sequence error message
func (e *SequenceError) Error() string {
	return fmt.Sprintf("sequence %s %s: %s and %s", e.signature, e.msg, e.files[0], e.files[1])
}

// Signature returns the sequence signature associated with the error
func (e *SequenceError) Signature() string {
	return e.signature
}

// Files returns the two conflicting filenames
func (e *SequenceError) Files() (string, string) {
	return e.files[0], e.files[1]
}

// FileError represents a filesystem refusal from which the run fully
// recovered: the rename batch was abandoned and every file restored to its
// original name, so the directory is logically unchanged.
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// AbortError indicates that a renaming batch was started but could not be
// completed, and the files have been left in an intermediate state. The
// scratch directory named by ScratchDir still contains isolated but
// un-renamed files; recovering them requires manual intervention.
type AbortError struct {
	ApplicationError
	scratchDir string
}

// NewAbortError creates a new abort error carrying the scratch directory path
func NewAbortError(msg string, scratchDir string, kind ErrorKind, err error) *AbortError {
	return &AbortError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		scratchDir: scratchDir,
	}
}

// Error returns the abort error message
func (e *AbortError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, e.scratchDir, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, e.scratchDir)
}

// ScratchDir returns the scratch directory still holding stranded files
func (e *AbortError) ScratchDir() string {
	return e.scratchDir
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsConfigError checks if the error is a configuration error
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsDirectoryError checks if the error is a directory error
func IsDirectoryError(err error) bool {
	var dirErr *DirectoryError
	return errors.As(err, &dirErr)
}

// IsSequenceError checks if the error is a malformed-sequence error
func IsSequenceError(err error) bool {
	var seqErr *SequenceError
	return errors.As(err, &seqErr)
}

// IsFileError checks if the error is a recoverable file error
func IsFileError(err error) bool {
	var fileErr *FileError
	return errors.As(err, &fileErr)
}

// IsAbortError checks if the error is an abort error
func IsAbortError(err error) bool {
	var abortErr *AbortError
	return errors.As(err, &abortErr)
}
