package counter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"unicode/utf8"

	"wordcounter/internal/errors"
	"wordcounter/internal/log"

	"github.com/richardlehane/mscfb"
)

// documentBodyEntry is the main document part of a WordprocessingML package.
// Headers, footers, footnotes and comments live in other parts and are not
// counted.
const documentBodyEntry = "word/document.xml"

// oleSignature starts every compound file. Office stores password-protected
// OOXML packages in one instead of a ZIP.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

type docxExtractor struct {
	missingBodyIsError bool
}

func (d *docxExtractor) Count(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, newError(errors.IOError, "failed to open file", path, FormatDOCX, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, newError(errors.IOError, "failed to stat file", path, FormatDOCX, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return 0, classifyArchiveError(f, path, err)
	}

	total := 0
	found := false
	for _, entry := range zr.File {
		if entry.Name != documentBodyEntry {
			continue
		}
		found = true
		n, err := countBodyEntry(entry, path)
		if err != nil {
			return 0, err
		}
		total += n
	}

	if !found {
		if d.missingBodyIsError {
			return 0, newError(errors.MissingDocumentBody, documentBodyEntry+" not found in archive", path, FormatDOCX, nil)
		}
		log.LogWithFields(log.F("path", path)).Warnf("%s not found, counting 0", documentBodyEntry)
	}
	return total, nil
}

func countBodyEntry(entry *zip.File, path string) (int, error) {
	rc, err := entry.Open()
	if err != nil {
		return 0, newError(errors.ArchiveError, "failed to open "+entry.Name, path, FormatDOCX, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return 0, newError(errors.IOError, "failed to read "+entry.Name, path, FormatDOCX, err)
	}
	if !utf8.Valid(data) {
		return 0, newError(errors.IOError, entry.Name+" is not valid UTF-8", path, FormatDOCX, nil)
	}

	n, err := countXMLText(data)
	if err != nil {
		return 0, newError(errors.ParseError, "malformed "+entry.Name, path, FormatDOCX, err)
	}
	return n, nil
}

// countXMLText counts tokens in every character data node of an XML
// document. Nodes are counted separately, so a word split across two runs
// counts twice. Entities are resolved by the decoder, and CDATA sections
// arrive as character data so their text is counted like any other.
func countXMLText(data []byte) (int, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	total := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return 0, err
		}
		if text, ok := tok.(xml.CharData); ok {
			text = bytes.TrimSpace(text)
			if len(text) > 0 {
				total += CountTokens(string(text))
			}
		}
	}
}

// classifyArchiveError explains why a .docx is not a ZIP. Encrypted Word
// documents are compound files holding an EncryptedPackage stream.
func classifyArchiveError(ra io.ReaderAt, path string, zipErr error) error {
	head := make([]byte, len(oleSignature))
	if _, err := ra.ReadAt(head, 0); err != nil || !bytes.Equal(head, oleSignature) {
		return newError(errors.ArchiveError, "invalid archive", path, FormatDOCX, zipErr)
	}

	doc, err := mscfb.New(ra)
	if err != nil {
		return newError(errors.ArchiveError, "invalid archive", path, FormatDOCX, err)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name == "EncryptedPackage" || entry.Name == "EncryptionInfo" {
			return newError(errors.ArchiveError, "document is password-protected", path, FormatDOCX, nil)
		}
	}
	return newError(errors.ArchiveError, "legacy OLE container, not a DOCX package", path, FormatDOCX, nil)
}
