package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"yamlmeta/annotation"
)

// directive is one //yaml:<name> line of a doc comment.
type directive struct {
	name string
	args []string
	pos  token.Pos
}

// parseDirectives extracts the yaml directives of a doc comment.
func parseDirectives(doc *ast.CommentGroup) ([]directive, error) {
	if doc == nil {
		return nil, nil
	}

	var (
		out  []directive
		errs []error
	)

	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, annotation.DirectivePrefix)
		if !ok {
			continue
		}

		fields, err := splitArgs(text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", annotation.DirectivePrefix, text, err))
			continue
		}

		if len(fields) == 0 {
			continue
		}

		out = append(out, directive{name: fields[0], args: fields[1:], pos: c.Slash})
	}

	return out, errors.Join(errs...)
}

// hasDirective returns true if doc carries the named directive.
func hasDirective(doc *ast.CommentGroup, name string) bool {
	dirs, _ := parseDirectives(doc)
	for _, d := range dirs {
		if d.name == name {
			return true
		}
	}

	return false
}

// splitArgs splits directive text on spaces. Double-quoted strings are
// unquoted, and spaces inside brackets are kept so that type expressions
// like Pair[int, string] stay in one piece.
func splitArgs(s string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		depth   int
		quoted  bool
		escaped bool
		started bool
	)

	flush := func() error {
		if !started {
			return nil
		}

		arg := current.String()
		if strings.HasPrefix(arg, `"`) {
			unq, err := strconv.Unquote(arg)
			if err != nil {
				return fmt.Errorf("invalid quoted argument %s: %w", arg, err)
			}

			arg = unq
		}

		args = append(args, arg)
		current.Reset()
		started = false

		return nil
	}

	for _, r := range s {
		switch {
		case quoted:
			current.WriteRune(r)

			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				quoted = false
			}

			continue

		case r == '"':
			quoted = true
		case r == '[':
			depth++
		case r == ']':
			depth--
		case (r == ' ' || r == '\t') && depth == 0:
			if err := flush(); err != nil {
				return nil, err
			}

			continue
		}

		current.WriteRune(r)
		started = true
	}

	if quoted {
		return nil, errors.New("unterminated quoted argument")
	}

	if depth != 0 {
		return nil, errors.New("unbalanced brackets")
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return args, nil
}

// memberOptions is the parsed form of a yaml struct tag or member directive.
type memberOptions struct {
	present  bool // a tag or directive was written at all
	ignore   bool
	name     string
	order    int
	hasOrder bool
}

// parseMemberTag parses the yaml struct tag of a field.
// Accepted forms: `yaml:"-"`, `yaml:"name"`, `yaml:"name,order=2,omitempty"`.
func parseMemberTag(tag reflect.StructTag) (memberOptions, error) {
	value, ok := tag.Lookup(annotation.TagKey)
	if !ok {
		return memberOptions{}, nil
	}

	if value == "-" {
		return memberOptions{present: true, ignore: true}, nil
	}

	name, rest, _ := strings.Cut(value, ",")
	opts := memberOptions{present: true, name: name}

	for _, opt := range strings.Split(rest, ",") {
		if err := opts.applyOrder(opt); err != nil {
			return opts, err
		}
	}

	return opts, nil
}

// parseMemberDirective parses the arguments of //yaml:member.
// Accepted forms: `name`, `order=2`, `name=title order=2`.
func parseMemberDirective(args []string) (memberOptions, error) {
	opts := memberOptions{present: true}

	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "name="); ok {
			opts.name = v
			continue
		}

		if strings.HasPrefix(arg, "order=") {
			if err := opts.applyOrder(arg); err != nil {
				return opts, err
			}

			continue
		}

		if opts.name == "" {
			opts.name = arg
		}
	}

	return opts, nil
}

func (o *memberOptions) applyOrder(opt string) error {
	v, ok := strings.CutPrefix(strings.TrimSpace(opt), "order=")
	if !ok {
		return nil
	}

	order, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid order %q: %w", v, err)
	}

	o.order = order
	o.hasOrder = true

	return nil
}
