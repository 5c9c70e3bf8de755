// Package testutils builds TXT, DOCX, PDF and compound-file fixtures on
// disk for tests. Everything is generated in memory, so no binary fixtures
// are checked in.
package testutils

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

// DocumentBody is the DOCX part the counter reads.
const DocumentBody = "word/document.xml"

// ZipEntry is one file inside a generated archive.
type ZipEntry struct {
	Name    string
	Content string
}

// CreateTestFile creates a simple test file with some content
func CreateTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	return CreateBinaryFile(t, dir, name, []byte(content))
}

// CreateBinaryFile writes raw bytes to dir/name.
func CreateBinaryFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, content, 0644)
	require.NoError(t, err, "Failed to create test file")
	return path
}

// ReadFile returns the contents of path.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// CreateZip writes a ZIP archive with the given entries, in order.
func CreateZip(t *testing.T, dir, name string, entries ...ZipEntry) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return CreateBinaryFile(t, dir, name, buf.Bytes())
}

// CreateDOCX writes a minimal package whose document body holds one run per
// element of runs. Runs are placed in a single paragraph with no whitespace
// between them.
func CreateDOCX(t *testing.T, dir, name string, runs ...string) string {
	t.Helper()
	return CreateZip(t, dir, name,
		ZipEntry{Name: "[Content_Types].xml", Content: contentTypesXML},
		ZipEntry{Name: DocumentBody, Content: DocumentXML(runs...)},
	)
}

// DocumentXML renders a WordprocessingML body with one w:r/w:t per run.
// Run text is inserted as is, so callers may pass entities or markup.
func DocumentXML(runs ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p>`)
	for _, r := range runs {
		b.WriteString(`<w:r><w:t xml:space="preserve">`)
		b.WriteString(r)
		b.WriteString(`</w:t></w:r>`)
	}
	b.WriteString(`</w:p></w:body></w:document>`)
	return b.String()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

// CreatePDF writes a one-page PDF. Each line gets its own text object; no
// lines gives a page with an empty content stream.
func CreatePDF(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	return CreateBinaryFile(t, dir, name, BuildTextPDF(lines...))
}

// BuildTextPDF assembles a single page PDF using the standard Helvetica font
// with a correct cross-reference table.
func BuildTextPDF(lines ...string) []byte {
	var stream strings.Builder
	for i, line := range lines {
		if i > 0 {
			stream.WriteByte('\n')
		}
		stream.WriteString("BT\n/F1 12 Tf\n72 " + strconv.Itoa(720-14*i) + " Td\n")
		stream.WriteString("(" + escapePDFString(line) + ") Tj\nET")
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		"<< /Length " + strconv.Itoa(stream.Len()) + " >>\nstream\n" + stream.String() + "\nendstream",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		b.WriteString(strconv.Itoa(i+1) + " 0 obj\n" + obj + "\nendobj\n")
	}

	xrefOffset := b.Len()
	b.WriteString("xref\n0 " + strconv.Itoa(len(offsets)) + "\n")
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		b.WriteString(padOffset(off) + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size " + strconv.Itoa(len(offsets)) + " /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")
	return []byte(b.String())
}

func escapePDFString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}

func padOffset(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 10 {
		s = "0" + s
	}
	return s
}

// Compound file constants.
const (
	cfbSectorSize = 512
	cfbFreeSect   = 0xFFFFFFFF
	cfbEndOfChain = 0xFFFFFFFE
	cfbFATSect    = 0xFFFFFFFD
	cfbNoStream   = 0xFFFFFFFF
)

// CreateOLEFile writes a version 3 compound file whose root storage holds a
// single empty stream named streamName. With "EncryptedPackage" this is the
// shape of a password-protected Office document.
func CreateOLEFile(t *testing.T, dir, name, streamName string) string {
	t.Helper()
	return CreateBinaryFile(t, dir, name, BuildOLEFile(streamName))
}

// BuildOLEFile lays out a header, one FAT sector (sector 0) and one
// directory sector (sector 1).
func BuildOLEFile(streamName string) []byte {
	buf := make([]byte, 3*cfbSectorSize)
	le := binary.LittleEndian

	hdr := buf[:cfbSectorSize]
	copy(hdr, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	le.PutUint16(hdr[24:], 0x003E)
	le.PutUint16(hdr[26:], 3)
	le.PutUint16(hdr[28:], 0xFFFE)
	le.PutUint16(hdr[30:], 9)
	le.PutUint16(hdr[32:], 6)
	le.PutUint32(hdr[44:], 1)    // FAT sectors
	le.PutUint32(hdr[48:], 1)    // first directory sector
	le.PutUint32(hdr[56:], 4096) // mini stream cutoff
	le.PutUint32(hdr[60:], cfbEndOfChain)
	le.PutUint32(hdr[68:], cfbEndOfChain)
	le.PutUint32(hdr[76:], 0)
	for i := 1; i < 109; i++ {
		le.PutUint32(hdr[76+4*i:], cfbFreeSect)
	}

	fat := buf[cfbSectorSize : 2*cfbSectorSize]
	for i := 0; i < cfbSectorSize/4; i++ {
		le.PutUint32(fat[4*i:], cfbFreeSect)
	}
	le.PutUint32(fat[0:], cfbFATSect)
	le.PutUint32(fat[4:], cfbEndOfChain)

	dir := buf[2*cfbSectorSize:]
	putDirEntry(dir[0:128], "Root Entry", 5, cfbNoStream, cfbNoStream, 1)
	putDirEntry(dir[128:256], streamName, 2, cfbNoStream, cfbNoStream, cfbNoStream)
	putDirEntry(dir[256:384], "", 0, cfbNoStream, cfbNoStream, cfbNoStream)
	putDirEntry(dir[384:512], "", 0, cfbNoStream, cfbNoStream, cfbNoStream)
	return buf
}

func putDirEntry(e []byte, name string, typ byte, left, right, child uint32) {
	le := binary.LittleEndian
	if name != "" {
		u := utf16.Encode([]rune(name))
		for i, c := range u {
			le.PutUint16(e[2*i:], c)
		}
		le.PutUint16(e[64:], uint16(2*(len(u)+1)))
	}
	e[66] = typ
	e[67] = 1 // black
	le.PutUint32(e[68:], left)
	le.PutUint32(e[72:], right)
	le.PutUint32(e[76:], child)
	le.PutUint32(e[116:], cfbEndOfChain)
}
