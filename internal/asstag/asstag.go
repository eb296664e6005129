// Package asstag splits subtitle text into override blocks and validates the
// override tags inside them. It covers the tags renderers act on; it is not a
// drawing-command parser.
package asstag

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Block is one {...} override block.
type Block struct {
	// Start and End are byte offsets of the braces in the source text.
	Start, End int
	Content    string
	// Closed is false when the block runs to the end of the text.
	Closed bool
}

// Tag is a parsed override tag such as \pos(10,20).
type Tag struct {
	Name string
	Arg  string
}

// SyntaxError describes an override block that does not parse.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }

// Blocks returns every override block in text in order.
func Blocks(text string) []Block {
	var out []Block
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end := strings.IndexByte(text[i+1:], '}')
		if end < 0 {
			out = append(out, Block{Start: i, End: len(text), Content: text[i+1:]})
			break
		}
		end += i + 1
		out = append(out, Block{Start: i, End: end + 1, Content: text[i+1 : end], Closed: true})
		i = end
	}
	return out
}

// IsComment reports whether a block holds free text rather than tags.
func (b Block) IsComment() bool {
	return b.Content != "" && (!strings.HasPrefix(b.Content, `\`) || strings.HasPrefix(b.Content, `\\`))
}

type argKind int

const (
	argInt argKind = iota
	argFloat
	argColor
	argText
	argParen
	argTransform
)

type tagSpec struct {
	kind argKind
	// arity lists accepted parenthesized argument counts.
	arity []int
	// min/max bound integer arguments when max > min.
	min, max int
}

var specs = map[string]tagSpec{
	"b": {kind: argInt}, "i": {kind: argInt, min: 0, max: 1}, "u": {kind: argInt, min: 0, max: 1}, "s": {kind: argInt, min: 0, max: 1},
	"an": {kind: argInt, min: 1, max: 9}, "a": {kind: argInt, min: 1, max: 11}, "q": {kind: argInt, min: 0, max: 3},
	"k": {kind: argFloat}, "K": {kind: argFloat}, "kf": {kind: argFloat}, "ko": {kind: argFloat},
	"p": {kind: argInt}, "pbo": {kind: argFloat}, "fe": {kind: argInt},
	"bord": {kind: argFloat}, "xbord": {kind: argFloat}, "ybord": {kind: argFloat},
	"shad": {kind: argFloat}, "xshad": {kind: argFloat}, "yshad": {kind: argFloat},
	"be": {kind: argFloat}, "blur": {kind: argFloat},
	"fs": {kind: argFloat}, "fscx": {kind: argFloat}, "fscy": {kind: argFloat}, "fsp": {kind: argFloat},
	"fr": {kind: argFloat}, "frx": {kind: argFloat}, "fry": {kind: argFloat}, "frz": {kind: argFloat},
	"fax": {kind: argFloat}, "fay": {kind: argFloat},
	"c": {kind: argColor}, "1c": {kind: argColor}, "2c": {kind: argColor}, "3c": {kind: argColor}, "4c": {kind: argColor},
	"alpha": {kind: argColor}, "1a": {kind: argColor}, "2a": {kind: argColor}, "3a": {kind: argColor}, "4a": {kind: argColor},
	"fn": {kind: argText}, "r": {kind: argText},
	"pos": {kind: argParen, arity: []int{2}}, "org": {kind: argParen, arity: []int{2}},
	"move": {kind: argParen, arity: []int{4, 6}}, "fad": {kind: argParen, arity: []int{2}},
	"fade": {kind: argParen, arity: []int{7}},
	"clip": {kind: argParen, arity: []int{1, 2, 4}}, "iclip": {kind: argParen, arity: []int{1, 2, 4}},
	"t": {kind: argTransform},
}

var namesByLength = func() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

var (
	intPattern   = regexp.MustCompile(`^-?\d+$`)
	floatPattern = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)$`)
	colorPattern = regexp.MustCompile(`^&?[Hh][0-9A-Fa-f]{1,8}&?$`)
)

// Parse validates the content of a single override block.
func Parse(content string) ([]Tag, error) {
	var tags []Tag
	rest := content
	for rest != "" {
		if rest[0] != '\\' {
			return nil, &SyntaxError{Msg: fmt.Sprintf("unexpected text %q", rest)}
		}
		rest = rest[1:]
		name := matchName(rest)
		if name == "" {
			return nil, &SyntaxError{Msg: fmt.Sprintf(`unrecognized tag \%s`, headOf(rest))}
		}
		rest = rest[len(name):]
		spec := specs[name]

		var arg string
		var err error
		switch spec.kind {
		case argParen, argTransform:
			arg, rest, err = takeParen(name, rest)
		default:
			arg, rest = takeUntilSlash(rest)
		}
		if err != nil {
			return nil, err
		}
		if err := validateArg(name, spec, arg); err != nil {
			return nil, err
		}
		tags = append(tags, Tag{Name: name, Arg: arg})
	}
	return tags, nil
}

func matchName(rest string) string {
	for _, name := range namesByLength {
		if strings.HasPrefix(rest, name) {
			return name
		}
	}
	return ""
}

func headOf(rest string) string {
	head, _ := takeUntilSlash(rest)
	return head
}

func takeUntilSlash(rest string) (string, string) {
	if i := strings.IndexByte(rest, '\\'); i >= 0 {
		return rest[:i], rest[i:]
	}
	return rest, ""
}

func takeParen(name, rest string) (string, string, error) {
	if !strings.HasPrefix(rest, "(") {
		return "", "", &SyntaxError{Msg: fmt.Sprintf(`\%s expects arguments in parentheses`, name)}
	}
	depth := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				arg, tail := rest[1:i], rest[i+1:]
				if tail != "" && tail[0] != '\\' {
					return "", "", &SyntaxError{Msg: fmt.Sprintf(`unexpected text %q after \%s`, headOf(tail), name)}
				}
				return arg, tail, nil
			}
		}
	}
	return "", "", &SyntaxError{Msg: fmt.Sprintf(`unterminated parenthesis in \%s`, name)}
}

func validateArg(name string, spec tagSpec, arg string) error {
	bad := func() error {
		return &SyntaxError{Msg: fmt.Sprintf(`bad argument %q for \%s`, arg, name)}
	}
	switch spec.kind {
	case argInt:
		if arg == "" {
			return nil
		}
		if !intPattern.MatchString(arg) {
			return bad()
		}
		if spec.max > spec.min {
			v, err := strconv.Atoi(arg)
			if err != nil || v < spec.min || v > spec.max {
				return bad()
			}
		}
	case argFloat:
		if arg != "" && !floatPattern.MatchString(arg) {
			return bad()
		}
	case argColor:
		if arg != "" && !colorPattern.MatchString(arg) {
			return bad()
		}
	case argText:
	case argParen:
		parts := strings.Split(arg, ",")
		if !containsInt(spec.arity, len(parts)) {
			return &SyntaxError{Msg: fmt.Sprintf(`\%s takes %s arguments, got %d`, name, joinInts(spec.arity), len(parts))}
		}
		if name == "clip" || name == "iclip" {
			if len(parts) != 4 {
				return nil
			}
		}
		for _, part := range parts {
			if !floatPattern.MatchString(strings.TrimSpace(part)) {
				return bad()
			}
		}
	case argTransform:
		// \t([t1,t2,][accel,]tags)
		i := strings.IndexByte(arg, '\\')
		if i < 0 {
			return bad()
		}
		if prefix := strings.TrimSuffix(strings.TrimSpace(arg[:i]), ","); prefix != "" {
			for _, part := range strings.Split(prefix, ",") {
				if !floatPattern.MatchString(strings.TrimSpace(part)) {
					return bad()
				}
			}
		}
		if _, err := Parse(arg[i:]); err != nil {
			return err
		}
	}
	return nil
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " or ")
}

// IsKaraoke reports whether every tag is a karaoke timing tag.
func IsKaraoke(tags []Tag) bool {
	if len(tags) == 0 {
		return false
	}
	for _, tag := range tags {
		switch tag.Name {
		case "k", "K", "kf", "ko":
		default:
			return false
		}
	}
	return true
}

// FontNames returns the font families selected with \fn across text.
func FontNames(text string) []string {
	var out []string
	for _, block := range Blocks(text) {
		if block.IsComment() {
			continue
		}
		tags, err := Parse(block.Content)
		if err != nil {
			continue
		}
		for _, tag := range tags {
			if tag.Name == "fn" && strings.TrimSpace(tag.Arg) != "" {
				out = append(out, strings.TrimSpace(tag.Arg))
			}
		}
	}
	return out
}
