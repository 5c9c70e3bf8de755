package counter_test

import (
	"testing"

	"wordcounter/internal/counter"
	"wordcounter/internal/errors"
	"wordcounter/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountDOCX(t *testing.T) {
	c := counter.New(counter.DefaultOptions())
	dir := t.TempDir()

	t.Run("single run", func(t *testing.T) {
		path := testutils.CreateDOCX(t, dir, "single.docx", "The quick brown fox")
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("word split across runs counts per node", func(t *testing.T) {
		path := testutils.CreateDOCX(t, dir, "split.docx", "Quarter", "ly Report 2024")
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("empty body", func(t *testing.T) {
		path := testutils.CreateDOCX(t, dir, "empty.docx")
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("entities are decoded", func(t *testing.T) {
		path := testutils.CreateDOCX(t, dir, "entities.docx", "fish &amp; chips", "&lt;tag&gt;")
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("cdata sections are counted", func(t *testing.T) {
		path := testutils.CreateDOCX(t, dir, "cdata.docx", "<![CDATA[a b]]>", "tail")
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("uppercase extension", func(t *testing.T) {
		path := testutils.CreateDOCX(t, dir, "REPORT.DOCX", "upper case name")
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("other parts are ignored", func(t *testing.T) {
		path := testutils.CreateZip(t, dir, "parts.docx",
			testutils.ZipEntry{Name: "word/header1.xml", Content: testutils.DocumentXML("header words here")},
			testutils.ZipEntry{Name: testutils.DocumentBody, Content: testutils.DocumentXML("body")},
		)
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestCountDOCXMissingBody(t *testing.T) {
	dir := t.TempDir()
	path := testutils.CreateZip(t, dir, "nobody.docx",
		testutils.ZipEntry{Name: "docProps/core.xml", Content: "<core/>"},
	)

	t.Run("error by default", func(t *testing.T) {
		c := counter.New(counter.DefaultOptions())
		n, err := c.Count(path)
		require.Error(t, err)
		assert.Zero(t, n)
		assert.True(t, errors.IsMissingDocumentBody(err))
		assert.Contains(t, err.Error(), "word/document.xml")
	})

	t.Run("zero when configured", func(t *testing.T) {
		opts := counter.DefaultOptions()
		opts.MissingBodyIsError = false
		c := counter.New(opts)
		n, err := c.Count(path)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestCountDOCXFailures(t *testing.T) {
	c := counter.New(counter.DefaultOptions())
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		kind    errors.ErrorKind
		message string
	}{
		{
			name: "not a zip",
			path: func(t *testing.T) string {
				return testutils.CreateTestFile(t, dir, "plain.docx", "this is not an archive")
			},
			kind:    errors.ArchiveError,
			message: "invalid archive",
		},
		{
			name: "truncated zip",
			path: func(t *testing.T) string {
				full := testutils.CreateDOCX(t, dir, "full.docx", "some words")
				data := testutils.ReadFile(t, full)
				return testutils.CreateBinaryFile(t, dir, "truncated.docx", data[:len(data)/2])
			},
			kind:    errors.ArchiveError,
			message: "invalid archive",
		},
		{
			name: "malformed xml",
			path: func(t *testing.T) string {
				return testutils.CreateZip(t, dir, "malformed.docx",
					testutils.ZipEntry{Name: testutils.DocumentBody, Content: "<w:document><w:body><w:t>open"},
				)
			},
			kind:    errors.ParseError,
			message: "malformed",
		},
		{
			name: "undeclared entity",
			path: func(t *testing.T) string {
				return testutils.CreateDOCX(t, dir, "nbsp.docx", "a&nbsp;b")
			},
			kind:    errors.ParseError,
			message: "malformed",
		},
		{
			name: "invalid utf-8 body",
			path: func(t *testing.T) string {
				return testutils.CreateZip(t, dir, "latin1.docx",
					testutils.ZipEntry{Name: testutils.DocumentBody, Content: testutils.DocumentXML("caf\xe9")},
				)
			},
			kind:    errors.IOError,
			message: "not valid UTF-8",
		},
		{
			name: "password protected",
			path: func(t *testing.T) string {
				return testutils.CreateOLEFile(t, dir, "secret.docx", "EncryptedPackage")
			},
			kind:    errors.ArchiveError,
			message: "password-protected",
		},
		{
			name: "legacy compound file",
			path: func(t *testing.T) string {
				return testutils.CreateOLEFile(t, dir, "legacy.docx", "WordDocument")
			},
			kind:    errors.ArchiveError,
			message: "not a DOCX package",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := c.Count(tt.path(t))
			require.Error(t, err)
			assert.Zero(t, n)
			assert.Equal(t, tt.kind, errors.KindOf(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
