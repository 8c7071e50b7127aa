package tabular

import "errors"

var (
	ErrUnsupportedFormat = errors.New("file format not supported")
	ErrEmptyFile         = errors.New("the uploaded file is empty")
)
