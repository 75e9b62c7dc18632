package web

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/thoas/go-funk"
)

// RequestParam is the reserved parameter name receiving the raw request.
const RequestParam = "request"

var (
	ErrDuplicateParam     = errors.New("duplicate parameter")
	ErrRequestArgPosition = errors.New("request parameter must be the last named parameter")
)

type ParamKind int

const (
	PositionalOrKeyword ParamKind = iota
	VarPositional
	KeywordOnlyParam
	VarKeyword
)

// Param is one entry of a handler's declared parameter list.
type Param struct {
	Name       string
	Kind       ParamKind
	Default    interface{}
	HasDefault bool
}

func Arg(name string) Param {
	return Param{Name: name, Kind: PositionalOrKeyword}
}

// Request declares the raw request parameter.
func Request() Param {
	return Arg(RequestParam)
}

func VarArgs(name string) Param {
	return Param{Name: name, Kind: VarPositional}
}

// KeywordOnly declares a required keyword.
func KeywordOnly(name string) Param {
	return Param{Name: name, Kind: KeywordOnlyParam}
}

// KeywordOnlyDefault declares an optional keyword filled with v when absent.
func KeywordOnlyDefault(name string, v interface{}) Param {
	return Param{Name: name, Kind: KeywordOnlyParam, Default: v, HasDefault: true}
}

// VarKeywords accepts every extracted keyword.
func VarKeywords(name string) Param {
	return Param{Name: name, Kind: VarKeyword}
}

func (p Param) String() string {
	switch p.Kind {
	case VarPositional:
		return "*" + p.Name
	case VarKeyword:
		return "**" + p.Name
	}
	if p.HasDefault {
		return fmt.Sprintf("%s=%v", p.Name, p.Default)
	}
	return p.Name
}

// FormatParams renders a parameter list, e.g. "request, *, id, page=1".
func FormatParams(params []Param) string {
	parts := make([]string, 0, len(params)+1)
	star := false
	for _, p := range params {
		if p.Kind == VarPositional {
			star = true
		}
		if p.Kind == KeywordOnlyParam && !star {
			parts = append(parts, "*")
			star = true
		}
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ", ")
}

// Descriptor is what the binder needs to know about a handler. It is computed
// once per route.
type Descriptor struct {
	HasRequestArg    bool
	HasVarKeywords   bool
	NamedKeywords    []string
	RequiredKeywords []string
	defaults         map[string]interface{}
}

// Describe validates the parameter list of the handler called name.
func Describe(name string, params []Param) (*Descriptor, error) {
	d := &Descriptor{defaults: map[string]interface{}{}}
	seen := make([]string, 0, len(params))
	for _, p := range params {
		if funk.ContainsString(seen, p.Name) {
			return nil, errors.Wrapf(ErrDuplicateParam, "%s in %s(%s)", p.Name, name, FormatParams(params))
		}
		seen = append(seen, p.Name)

		if p.Name == RequestParam {
			d.HasRequestArg = true
			continue
		}
		if d.HasRequestArg && p.Kind == PositionalOrKeyword {
			return nil, errors.Wrapf(ErrRequestArgPosition, "in function: %s(%s)", name, FormatParams(params))
		}
		switch p.Kind {
		case VarKeyword:
			d.HasVarKeywords = true
		case KeywordOnlyParam:
			d.NamedKeywords = append(d.NamedKeywords, p.Name)
			if p.HasDefault {
				d.defaults[p.Name] = p.Default
			} else {
				d.RequiredKeywords = append(d.RequiredKeywords, p.Name)
			}
		}
	}
	return d, nil
}

// WantsKeywords reports whether the request body or query string is read.
func (d *Descriptor) WantsKeywords() bool {
	return d.HasVarKeywords || len(d.NamedKeywords) > 0 || len(d.RequiredKeywords) > 0
}
