package session

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/san-kum/skidsteer/internal/drive"
)

const maxRepeat = 1000

var repeatSuffix = regexp.MustCompile(`^(.+?)[x*](\d+)$`)

// ParseScript reads commands separated by whitespace or commas. A '#'
// starts a comment. A token may carry a repeat count: "forward*3", "8x3".
func ParseScript(r io.Reader) ([]drive.Symbol, error) {
	var (
		syms []drive.Symbol
		errs error
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		for _, tok := range fields {
			parsed, err := ParseToken(tok)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("line %d: %w", line, err))
				continue
			}
			syms = append(syms, parsed...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if errs != nil {
		return nil, errs
	}
	return syms, nil
}

// ParseArgs parses command-line tokens the same way as a script line.
func ParseArgs(args []string) ([]drive.Symbol, error) {
	return ParseScript(strings.NewReader(strings.Join(args, " ")))
}

// ParseToken expands one token, including any repeat suffix.
func ParseToken(tok string) ([]drive.Symbol, error) {
	count := 1
	name := tok
	if sym, err := drive.ParseSymbol(tok); err == nil {
		return []drive.Symbol{sym}, nil
	}
	if m := repeatSuffix.FindStringSubmatch(tok); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 || n > maxRepeat {
			return nil, fmt.Errorf("%w: bad repeat count in %q", drive.ErrInvalidInput, tok)
		}
		name, count = m[1], n
	}
	sym, err := drive.ParseSymbol(name)
	if err != nil {
		return nil, err
	}
	out := make([]drive.Symbol, count)
	for i := range out {
		out[i] = sym
	}
	return out, nil
}
