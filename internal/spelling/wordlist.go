package spelling

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	sublang "sublint/internal/language"
)

var lowerCaser = cases.Lower(language.Und)

// WordList holds user words. Words written in lower case match any casing;
// everything else matches exactly.
type WordList struct {
	insensitive map[string]struct{}
	sensitive   map[string]struct{}
}

// NewWordList returns an empty list.
func NewWordList() *WordList {
	return &WordList{insensitive: map[string]struct{}{}, sensitive: map[string]struct{}{}}
}

// Add inserts word.
func (l *WordList) Add(word string) {
	word = norm.NFC.String(strings.TrimSpace(word))
	if word == "" {
		return
	}
	if isLower(word) {
		l.insensitive[lowerCaser.String(word)] = struct{}{}
		return
	}
	l.sensitive[word] = struct{}{}
}

// Contains reports whether word is on the list.
func (l *WordList) Contains(word string) bool {
	if l == nil {
		return false
	}
	word = norm.NFC.String(word)
	if _, ok := l.sensitive[word]; ok {
		return true
	}
	_, ok := l.insensitive[lowerCaser.String(word)]
	return ok
}

// Len returns the number of stored words.
func (l *WordList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.insensitive) + len(l.sensitive)
}

// isLower reports whether word has a cased letter and no upper-case ones.
func isLower(word string) bool {
	lowered := lowerCaser.String(word)
	return lowered == word && strings.ToUpper(word) != word
}

// CustomListNames returns the per-project list file names tried beside a
// subtitle file, in priority order.
func CustomListNames(lang string) []string {
	short := sublang.Short(lang)
	return []string{
		fmt.Sprintf("dict-%s.txt", lang),
		fmt.Sprintf("dict-%s.txt", short),
		fmt.Sprintf("%s-dict.txt", lang),
		fmt.Sprintf("%s-dict.txt", short),
		"dict.txt",
	}
}

// LoadCustomLists reads the first list file found next to subtitlePath.
// Lines starting with "!" go to the blacklist, the rest to the whitelist.
// path is empty when no file exists.
func LoadCustomLists(subtitlePath, lang string) (whitelist, blacklist *WordList, path string, err error) {
	whitelist, blacklist = NewWordList(), NewWordList()
	dir := filepath.Dir(subtitlePath)
	for _, name := range CustomListNames(lang) {
		candidate := filepath.Join(dir, name)
		file, openErr := os.Open(candidate)
		if errors.Is(openErr, fs.ErrNotExist) {
			continue
		}
		if openErr != nil {
			return nil, nil, "", fmt.Errorf("open word list: %w", openErr)
		}
		readErr := readCustomList(file, whitelist, blacklist)
		closeErr := file.Close()
		if readErr != nil {
			return nil, nil, "", fmt.Errorf("read word list %s: %w", candidate, readErr)
		}
		if closeErr != nil {
			return nil, nil, "", fmt.Errorf("close word list %s: %w", candidate, closeErr)
		}
		return whitelist, blacklist, candidate, nil
	}
	return whitelist, blacklist, "", nil
}

func readCustomList(r io.Reader, whitelist, blacklist *WordList) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if word, ok := strings.CutPrefix(line, "!"); ok {
			blacklist.Add(word)
			continue
		}
		whitelist.Add(line)
	}
	return scanner.Err()
}
