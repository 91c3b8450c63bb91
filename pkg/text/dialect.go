// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// pattern is a find value in Python re syntax rewritten for regexp2.
//
// Python numbers every capturing group left to right, while regexp2 numbers
// named groups after the unnamed ones. Named groups are therefore emitted
// unnamed and their names are resolved here, which keeps \1 and \g<1>
// pointing at the same group in both dialects.
type pattern struct {
	expr   string
	names  map[string]int
	groups int
}

// translatePattern rewrites (?P<name>...), (?P=name) and \Z. Other
// constructs are passed through for regexp2 to accept or reject.
func translatePattern(find string) (*pattern, error) {
	p := &pattern{names: map[string]int{}}
	var b strings.Builder
	b.Grow(len(find))

	for i := 0; i < len(find); i++ {
		c := find[i]
		switch {
		case c == '\\':
			if i+1 < len(find) && find[i+1] == 'Z' {
				b.WriteString(`\z`)
				i++
				continue
			}
			b.WriteByte(c)
			if i+1 < len(find) {
				b.WriteByte(find[i+1])
				i++
			}

		case c == '[':
			end := classEnd(find, i)
			b.WriteString(find[i:end])
			i = end - 1

		case c == '(' && strings.HasPrefix(find[i:], "(?P<"):
			name, end, err := groupName(find, i+len("(?P<"), '>')
			if err != nil {
				return nil, err
			}
			if _, dup := p.names[name]; dup {
				return nil, errors.Errorf("redefinition of group name %q", name)
			}
			p.groups++
			p.names[name] = p.groups
			b.WriteByte('(')
			i = end

		case c == '(' && strings.HasPrefix(find[i:], "(?P="):
			name, end, err := groupName(find, i+len("(?P="), ')')
			if err != nil {
				return nil, err
			}
			n, ok := p.names[name]
			if !ok {
				return nil, errors.Errorf("unknown group name %q", name)
			}
			b.WriteString(`\k<` + strconv.Itoa(n) + `>`)
			i = end

		case c == '(' && strings.HasPrefix(find[i:], "(?#"):
			end := strings.IndexByte(find[i:], ')')
			if end < 0 {
				return nil, errors.Errorf("missing ), unterminated comment")
			}
			i += end

		case c == '(' && strings.HasPrefix(find[i:], "(?("):
			// the condition's parens do not capture
			end := strings.IndexByte(find[i+3:], ')')
			if end < 0 {
				return nil, errors.Errorf("missing ), unterminated name")
			}
			cond := find[i+3 : i+3+end]
			if n, ok := p.names[cond]; ok {
				cond = strconv.Itoa(n)
			}
			b.WriteString("(?(" + cond + ")")
			i += 3 + end

		case c == '(' && (strings.HasPrefix(find[i:], "(?<") || strings.HasPrefix(find[i:], "(?'")):
			if strings.HasPrefix(find[i:], "(?<=") || strings.HasPrefix(find[i:], "(?<!") {
				b.WriteString(find[i : i+4])
				i += 3
				continue
			}
			return nil, errors.Errorf("unknown extension %s", find[i+1:min(i+4, len(find))])

		case c == '(' && strings.HasPrefix(find[i:], "(?"):
			b.WriteString("(?")
			i++

		case c == '(':
			p.groups++
			b.WriteByte(c)

		default:
			b.WriteByte(c)
		}
	}

	p.expr = b.String()
	return p, nil
}

// classEnd returns the index just past the character class opening at i.
// A ']' right after '[' or '[^' is a literal member.
func classEnd(s string, i int) int {
	j := i + 1
	if j < len(s) && s[j] == '^' {
		j++
	}
	if j < len(s) && s[j] == ']' {
		j++
	}
	for ; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case ']':
			return j + 1
		}
	}
	return len(s)
}

// groupName reads an identifier starting at i up to the closing byte and
// returns it with the index of the closing byte.
func groupName(s string, i int, closing byte) (string, int, error) {
	end := strings.IndexByte(s[i:], closing)
	if end < 0 {
		return "", 0, errors.Errorf("missing %c, unterminated name", closing)
	}
	name := s[i : i+end]
	if !isIdentifier(name) {
		return "", 0, errors.Errorf("bad character in group name %q", name)
	}
	return name, i + end, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// templatePart is either literal text or a group reference.
type templatePart struct {
	lit   string
	group int // -1 for literal text
}

// template is a parsed Python re.sub replacement string.
type template []templatePart

// escapes are the letter escapes a Python replacement template accepts.
var escapes = map[byte]string{
	'a': "\a",
	'b': "\b",
	'f': "\f",
	'n': "\n",
	'r': "\r",
	't': "\t",
	'v': "\v",
}

// parseTemplate parses repl with Python re.sub rules: \1..\99 and \g<...>
// reference groups, \0 and three-digit octals are characters, letter
// escapes are processed, and '$' has no special meaning.
func parseTemplate(repl string, p *pattern) (template, error) {
	var out template
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, templatePart{lit: lit.String(), group: -1})
			lit.Reset()
		}
	}
	ref := func(n int) error {
		if n > p.groups {
			return errors.Errorf("invalid group reference %d", n)
		}
		flush()
		out = append(out, templatePart{group: n})
		return nil
	}

	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c != '\\' {
			lit.WriteByte(c)
			continue
		}
		if i+1 >= len(repl) {
			return nil, errors.Errorf("bad escape (end of pattern)")
		}
		i++
		c = repl[i]

		switch {
		case c == 'g':
			if i+1 >= len(repl) || repl[i+1] != '<' {
				return nil, errors.Errorf("missing <")
			}
			end := strings.IndexByte(repl[i+2:], '>')
			if end < 0 {
				return nil, errors.Errorf("missing >, unterminated name")
			}
			name := repl[i+2 : i+2+end]
			i += 2 + end
			n, err := p.lookup(name)
			if err != nil {
				return nil, err
			}
			if err := ref(n); err != nil {
				return nil, err
			}

		case c == '0':
			j := i + 1
			for j < len(repl) && j < i+3 && isOctal(repl[j]) {
				j++
			}
			v, _ := strconv.ParseUint(repl[i:j], 8, 32)
			lit.WriteRune(rune(v))
			i = j - 1

		case c >= '1' && c <= '9':
			if i+2 < len(repl) && isOctal(c) && isOctal(repl[i+1]) && isOctal(repl[i+2]) {
				v, _ := strconv.ParseUint(repl[i:i+3], 8, 32)
				if v > 0o377 {
					return nil, errors.Errorf("octal escape value \\%s outside of range 0-0o377", repl[i:i+3])
				}
				lit.WriteRune(rune(v))
				i += 2
				continue
			}
			j := i + 1
			if j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(repl[i:j])
			if err := ref(n); err != nil {
				return nil, err
			}
			i = j - 1

		case c == '\\':
			lit.WriteByte('\\')

		case c < utf8.RuneSelf && (c|0x20) >= 'a' && (c|0x20) <= 'z':
			e, ok := escapes[c]
			if !ok {
				return nil, errors.Errorf("bad escape \\%c", c)
			}
			lit.WriteString(e)

		default:
			// unknown non-letter escapes are kept as written
			lit.WriteByte('\\')
			lit.WriteByte(c)
		}
	}

	flush()
	return out, nil
}

// lookup resolves a \g<...> name, which is either a group name or a number.
func (p *pattern) lookup(name string) (int, error) {
	if name != "" && strings.Trim(name, "0123456789") == "" {
		n, err := strconv.Atoi(name)
		if err != nil {
			return 0, errors.Errorf("invalid group reference %s", name)
		}
		return n, nil
	}
	if !isIdentifier(name) {
		return 0, errors.Errorf("bad character in group name %q", name)
	}
	n, ok := p.names[name]
	if !ok {
		return 0, errors.Errorf("unknown group name %q", name)
	}
	return n, nil
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

// expand renders the template for one match. Groups that did not take part
// in the match expand to the empty string.
func (t template) expand(m regexp2.Match) string {
	if len(t) == 1 && t[0].group < 0 {
		return t[0].lit
	}
	var b strings.Builder
	for _, part := range t {
		if part.group < 0 {
			b.WriteString(part.lit)
			continue
		}
		if g := m.GroupByNumber(part.group); g != nil && len(g.Captures) > 0 {
			b.WriteString(g.String())
		}
	}
	return b.String()
}
