package core

import "github.com/pkg/errors"

// ParseError describes a malformed input row in one of the external CSV
// formats, with enough context to locate the offending line.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return errors.Wrapf(errors.New(e.Message), "%s:%d", e.File, e.Line).Error()
}

// NewParseError builds a ParseError for the given file/line.
func NewParseError(file string, line int, format string, args ...interface{}) error {
	return &ParseError{File: file, Line: line, Message: errors.Errorf(format, args...).Error()}
}
