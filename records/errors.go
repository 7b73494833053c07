package records

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile is returned when a file contains no header row.
	ErrEmptyFile = errors.New("file has no rows")
)
