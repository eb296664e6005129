package spelling

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	sublang "sublint/internal/language"
	"sublint/internal/services"
)

// Checker decides whether a single word is spelled correctly.
type Checker interface {
	Check(word string) bool
}

// Dictionary is the stem list of a hunspell dictionary. Affix rules are not
// applied, so only listed forms are accepted.
type Dictionary struct {
	Path  string
	words map[string]struct{}
	upper cases.Caser
	title cases.Caser
	lower cases.Caser
}

// OpenDictionary finds <lang>.dic in dir, trying region and base variants.
func OpenDictionary(dir, lang string) (*Dictionary, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "spelling", "open dictionary", "spelling.dictionary_dir is not set", nil)
	}
	for _, variant := range sublang.Variants(lang) {
		path := filepath.Join(dir, variant+".dic")
		file, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open dictionary: %w", err)
		}
		defer file.Close()
		reader, err := decoderFor(strings.TrimSuffix(path, ".dic")+".aff", file)
		if err != nil {
			return nil, err
		}
		dict, err := ParseDictionary(reader, lang)
		if err != nil {
			return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
		}
		dict.Path = path
		return dict, nil
	}
	return nil, services.Wrap(services.ErrNotFound, "spelling", "open dictionary",
		fmt.Sprintf("no dictionary for %q in %s", lang, dir), nil)
}

// decoderFor wraps r with the charset declared by the SET line of the affix
// file. Missing affix files mean UTF-8.
func decoderFor(affPath string, r io.Reader) (io.Reader, error) {
	file, err := os.Open(affPath)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open affix file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "SET" {
			continue
		}
		enc, err := htmlindex.Get(strings.ToLower(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("affix charset %q: %w", fields[1], err)
		}
		return transform.NewReader(r, enc.NewDecoder()), nil
	}
	return r, scanner.Err()
}

// ParseDictionary reads a .dic stream: an optional leading word count, then
// one entry per line with optional /FLAGS.
func ParseDictionary(r io.Reader, lang string) (*Dictionary, error) {
	tag, err := sublang.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	dict := &Dictionary{
		words: make(map[string]struct{}),
		upper: cases.Upper(tag),
		title: cases.Title(tag, cases.NoLower),
		lower: cases.Lower(tag),
	}
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if _, err := strconv.Atoi(line); err == nil {
				continue
			}
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, _, _ := strings.Cut(line, "/")
		word, _, _ = strings.Cut(word, "\t")
		if word = strings.TrimSpace(word); word != "" {
			dict.words[norm.NFC.String(word)] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

// Len returns the number of stems.
func (d *Dictionary) Len() int { return len(d.words) }

// Check accepts listed words and the capitalized or upper-case forms of
// listed lower-case words.
func (d *Dictionary) Check(word string) bool {
	word = norm.NFC.String(word)
	if d.has(word) {
		return true
	}
	lowered := d.lower.String(word)
	switch word {
	case d.title.String(lowered):
		return d.has(lowered)
	case d.upper.String(word):
		return d.has(lowered) || d.has(d.title.String(lowered))
	}
	return false
}

func (d *Dictionary) has(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Proxy layers custom lists over a base checker: blacklisted words always
// fail and whitelisted words pass.
type Proxy struct {
	Base      Checker
	Whitelist *WordList
	Blacklist *WordList
}

func (p Proxy) Check(word string) bool {
	if p.Blacklist.Contains(word) {
		return false
	}
	return p.Base.Check(word) || p.Whitelist.Contains(word)
}
