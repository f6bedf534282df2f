package output

import (
	"io"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// LoggerInterface defines the logging interface for commands.
// This allows for dependency injection and easier testing.
type LoggerInterface interface {
	// Core logging methods
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Success(format string, args ...interface{})

	// Output methods
	Println(format string, args ...interface{})
	Bold(format string, args ...interface{})
	Cyan(format string, args ...interface{})
	Field(label string, value interface{})

	// Configuration methods
	SetVerbose(verbose bool)
	SetNoColor(noColor bool)
	SetJSONMode(jsonMode bool)
	IsVerbose() bool
	IsJSONMode() bool

	// Writer access
	Writer() io.Writer
	ErrWriter() io.Writer

	// Submission printing
	PrintSubmission(res *network.SubmissionResult)
	PrintFailure(info *FailureInfo)
}

// Verify that Logger implements LoggerInterface at compile time.
var _ LoggerInterface = (*Logger)(nil)
