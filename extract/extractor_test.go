package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		format   core.Format
		wantErr  bool
	}{
		{"notes.txt", core.FormatText, false},
		{"README.md", core.FormatText, false},
		{"report.PDF", core.FormatPDF, false},
		{"page.html", core.FormatHTML, false},
		{"page.htm", core.FormatHTML, false},
		{"archive.zip", 0, true},
		{"noextension", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, err := DetectFormat(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestExtract_Text(t *testing.T) {
	e := New()

	text, err := e.Extract([]byte("  A cat sat. A dog ran.  \n"), core.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "A cat sat. A dog ran.", text)
}

func TestExtract_HTML(t *testing.T) {
	e := New()

	page := `<html><head><title>Pets</title><style>p { color: red; }</style>
<script>alert("hi");</script></head>
<body><h1>Pets</h1><p>A cat sat.</p><p>A dog ran.</p></body></html>`

	text, err := e.Extract([]byte(page), core.FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, text, "A cat sat.")
	assert.Contains(t, text, "A dog ran.")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color: red")
}

func TestExtract_EmptyContent(t *testing.T) {
	e := New()

	_, err := e.Extract([]byte("   \n\t  "), core.FormatText)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestExtract_InvalidPDF(t *testing.T) {
	e := New()

	_, err := e.Extract([]byte("not a pdf"), core.FormatPDF)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtract_UnknownFormat(t *testing.T) {
	e := New()

	_, err := e.Extract([]byte("content"), core.Format(99))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
