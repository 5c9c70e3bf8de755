// Package counter counts whitespace-delimited words in TXT, DOCX and PDF
// files. A Counter picks the extractor for a path by its extension and
// returns the extractor's result unchanged.
package counter

import (
	"path/filepath"
	"strings"
	"time"

	"wordcounter/internal/config"
	"wordcounter/internal/errors"
	"wordcounter/internal/log"

	"github.com/gobwas/glob"
)

// Format names, equal to the lowercase extension they are selected by.
const (
	FormatTXT  = "txt"
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
)

// Extractor counts the words of one file format.
type Extractor interface {
	Count(path string) (int, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(path string) (int, error)

// Count calls f(path).
func (f ExtractorFunc) Count(path string) (int, error) {
	return f(path)
}

// Options tune extractor behavior.
type Options struct {
	// MissingBodyIsError makes a DOCX without word/document.xml fail with
	// MissingDocumentBody instead of counting 0.
	MissingBodyIsError bool
	// PDFFallback retries PDFs the primary parser could not read with a
	// content stream scanner.
	PDFFallback bool
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		MissingBodyIsError: true,
		PDFFallback:        true,
	}
}

// OptionsFromConfig maps the counter section of cfg onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		MissingBodyIsError: cfg.MissingBodyIsError(),
		PDFFallback:        cfg.Counter.PDFFallback,
	}
}

type format struct {
	name      string
	pattern   glob.Glob
	extractor Extractor
}

// Counter dispatches a path to the extractor registered for its extension.
type Counter struct {
	formats []format
}

// New creates a Counter with the TXT, DOCX and PDF extractors registered.
func New(opts Options) *Counter {
	c := &Counter{}
	c.register(FormatTXT, ExtractorFunc(countTXT))
	c.register(FormatDOCX, &docxExtractor{missingBodyIsError: opts.MissingBodyIsError})
	c.register(FormatPDF, &pdfExtractor{fallback: opts.PDFFallback})
	return c
}

// register binds name to extractor. Matching is done on the lowercased base
// name; the leading "?" keeps dotfiles such as ".txt" from matching, since
// those have no extension.
func (c *Counter) register(name string, extractor Extractor) {
	c.formats = append(c.formats, format{
		name:      name,
		pattern:   glob.MustCompile("?*." + name),
		extractor: extractor,
	})
}

// Formats lists the registered format names in registration order.
func (c *Counter) Formats() []string {
	names := make([]string, 0, len(c.formats))
	for _, f := range c.formats {
		names = append(names, f.name)
	}
	return names
}

func (c *Counter) lookup(path string) *format {
	base := strings.ToLower(filepath.Base(path))
	for i := range c.formats {
		if c.formats[i].pattern.Match(base) {
			return &c.formats[i]
		}
	}
	return nil
}

// Count returns the number of words in the file at path.
func (c *Counter) Count(path string) (int, error) {
	start := time.Now()

	f := c.lookup(path)
	if f == nil {
		err := errors.NewCountError(errors.UnsupportedFormatMessage, path, Extension(path), errors.UnsupportedFormat, nil)
		log.LogWithError(err).Warn("Unsupported file format")
		return 0, err
	}

	n, err := f.extractor.Count(path)
	if err != nil {
		log.LogWithError(err).With(log.F("duration", time.Since(start).String())).Error("Word count failed")
		return 0, err
	}

	log.LogWithFields(
		log.F("path", path),
		log.F("format", f.name),
		log.F("words", n),
		log.F("duration", time.Since(start).String()),
	).Info("Counted words")
	return n, nil
}

// Extension returns the lowercase extension of path without the dot. A base
// name without a dot, or a dotfile with no further dot, has no extension.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

func newError(kind errors.ErrorKind, msg, path, format string, err error) error {
	return errors.NewCountError(msg, path, format, kind, err)
}
