// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/unidoc/unipdf/v3/common/license"

	"github.com/poiesic/docquery/core"
)

// Extractor converts uploaded document bytes into plain text suitable for
// chunking.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{
		logger: slog.Default().With("component", "extractor"),
	}
}

// SetPDFLicenseKey registers the UniDoc metered license key. Must be called
// before extracting PDF content; other formats do not require it.
func SetPDFLicenseKey(key string) error {
	if key == "" {
		return nil
	}
	return license.SetMeteredKey(key)
}

// DetectFormat maps a file name to its document format by extension.
func DetectFormat(filename string) (core.Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md":
		return core.FormatText, nil
	case ".pdf":
		return core.FormatPDF, nil
	case ".html", ".htm":
		return core.FormatHTML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Extract returns the plain text of a document. The text is trimmed;
// documents that yield only whitespace return ErrEmptyContent.
func (e *Extractor) Extract(content []byte, format core.Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case core.FormatText:
		text = string(content)
	case core.FormatPDF:
		text, err = extractPDF(content)
	case core.FormatHTML:
		text, err = extractHTML(content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyContent
	}

	e.logger.Debug("extracted document text", "format", format.String(), "chars", len(text))
	return text, nil
}
