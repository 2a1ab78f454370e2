package extract

import "errors"

var (
	// ErrUnsupportedFormat indicates the file type has no extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyContent indicates extraction produced no usable text.
	ErrEmptyContent = errors.New("document has no extractable text")

	// ErrExtractionFailed indicates the document could not be parsed.
	ErrExtractionFailed = errors.New("text extraction failed")
)
