package counter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"wordcounter/internal/errors"
)

// countTXT sums the tokens of every line of a UTF-8 text file.
func countTXT(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, newError(errors.IOError, "failed to open file", path, FormatTXT, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	total := 0
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			if !utf8.ValidString(line) {
				return 0, newError(errors.IOError, fmt.Sprintf("line %d is not valid UTF-8", lineNo), path, FormatTXT, nil)
			}
			total += CountTokens(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, newError(errors.IOError, "failed to read file", path, FormatTXT, err)
		}
	}
	return total, nil
}
