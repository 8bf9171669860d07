package foaas

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint describes one upstream route: a name and a path template whose
// {param} placeholders are filled positionally.
type Endpoint struct {
	Name string // e.g. "awesome"
	Path string // e.g. "/awesome/{from}"
}

// Params returns the placeholder names of the path template in order.
func (e Endpoint) Params() []string {
	var params []string
	for _, seg := range strings.Split(e.Path, "/") {
		if p, ok := placeholder(seg); ok {
			params = append(params, p)
		}
	}
	return params
}

// Arity is the number of arguments the endpoint takes.
func (e Endpoint) Arity() int {
	return len(e.Params())
}

// Render substitutes args into the template in order. When escape is set
// every argument is percent-encoded as a single path segment; otherwise it is
// spliced verbatim.
func (e Endpoint) Render(args []string, escape bool) (string, error) {
	segs := strings.Split(e.Path, "/")
	want := 0
	for _, seg := range segs {
		if _, ok := placeholder(seg); ok {
			want++
		}
	}
	if len(args) != want {
		return "", fmt.Errorf("%w: %s takes %d, got %d", ErrArity, e.Name, want, len(args))
	}
	i := 0
	for j, seg := range segs {
		if _, ok := placeholder(seg); !ok {
			continue
		}
		arg := args[i]
		if escape {
			arg = url.PathEscape(arg)
		}
		segs[j] = arg
		i++
	}
	return strings.Join(segs, "/"), nil
}

func (e Endpoint) String() string {
	return e.Name + " " + e.Path
}

func placeholder(seg string) (string, bool) {
	if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return "", false
	}
	return seg[1 : len(seg)-1], true
}

var endpointIndex = func() map[string]Endpoint {
	m := make(map[string]Endpoint, len(Endpoints))
	for _, e := range Endpoints {
		m[e.Name] = e
	}
	return m
}()

// Lookup finds an endpoint by name.
func Lookup(name string) (Endpoint, bool) {
	e, ok := endpointIndex[name]
	return e, ok
}
