// Package assets bundles the default word lists.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// ParseWords reads one word per line, skipping blanks and "#" comments.
// Words are trimmed and lowercased; order is preserved.
func ParseWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readList(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWords(f)
}

// AnswersList is the ordered list of daily solutions.
func AnswersList() ([]string, error) {
	return readList("answers.txt")
}

// AllowedList holds extra guessable words that are never solutions.
func AllowedList() ([]string, error) {
	return readList("allowed.txt")
}
