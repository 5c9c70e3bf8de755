package counter

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"

	"wordcounter/internal/errors"
	"wordcounter/internal/log"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type pdfExtractor struct {
	fallback bool
}

func (p *pdfExtractor) Count(path string) (int, error) {
	text, err := readPDFText(path)
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return 0, newError(errors.ExtractionError, "document is encrypted", path, FormatPDF, nil)
	}
	if err == nil && strings.TrimSpace(text) != "" {
		return CountTokens(text), nil
	}

	if p.fallback {
		log.LogWithFields(log.F("path", path), log.F("cause", err)).Debug("Primary PDF reader found no text, scanning content streams")
		if alt, altErr := scanPDFContent(path); altErr == nil && strings.TrimSpace(alt) != "" {
			return CountTokens(alt), nil
		} else if altErr != nil {
			log.LogWithFields(log.F("path", path), log.F("cause", altErr)).Debug("Content stream scan failed")
		}
	}

	if err != nil {
		return 0, newError(errors.ExtractionError, "failed to extract text", path, FormatPDF, err)
	}
	return 0, newError(errors.ExtractionError, "no extractable text layer", path, FormatPDF, nil)
}

// readPDFText returns the plain text of every page, pages separated by a
// newline.
func readPDFText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("pdf parser panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", errors.Wrapf(err, "page %d", i)
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}

// scanPDFContent reads the document with pdfcpu and collects the string
// operands of text showing operators from each page's content stream.
func scanPDFContent(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("pdfcpu panic: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return "", errors.Wrap(err, "pdfcpu read")
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(textOperands(data))
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("no text operands in content streams")
	}
	return sb.String(), nil
}

var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// textOperands extracts the literal strings shown by Tj, TJ and ' on each
// line of a content stream. Each text operator starts a new line so words
// from separate operators never merge.
func textOperands(data []byte) string {
	var sb strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if !bytes.HasSuffix(line, []byte("Tj")) &&
			!bytes.HasSuffix(line, []byte("TJ")) &&
			!bytes.HasSuffix(line, []byte("'")) {
			continue
		}
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			sb.WriteString(decodePDFString(m[1]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// decodePDFString resolves the escape sequences of a PDF literal string.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '\n':
			// line continuation
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				continue
			}
			val := int(c - '0')
			for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}
