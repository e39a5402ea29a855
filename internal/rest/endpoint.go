package rest

import (
	"net/http"
	"net/url"
	"strings"
)

// Arg is the argument of a query or mutation: an optional resource id that
// fills the {id} placeholder of a path, and optional query parameters.
type Arg struct {
	ID     string
	Params url.Values
}

// NoArg is the argument of endpoints that take none.
var NoArg = Arg{}

// ID returns an Arg naming a single resource.
func ID(id string) Arg { return Arg{ID: id} }

func (a Arg) key() string {
	var b strings.Builder
	b.WriteString(a.ID)
	if len(a.Params) > 0 {
		b.WriteByte('?')
		b.WriteString(a.Params.Encode())
	}
	return b.String()
}

// Query declares a cached read endpoint.
type Query struct {
	Name     string
	Path     string
	Provides TagFunc
}

// Key returns the cache key of the query for arg.
func (q Query) Key(arg Arg) string { return q.Name + "(" + arg.key() + ")" }

// Tags returns the tags provided by the query's result for arg.
func (q Query) Tags(arg Arg) Tags {
	if q.Provides == nil {
		return nil
	}
	return q.Provides(arg)
}

// Mutation declares a write endpoint and the tags its success invalidates.
type Mutation struct {
	Name        string
	Method      string
	Path        string
	Invalidates TagFunc
}

// Tags returns the tags invalidated by a successful call with arg.
func (m Mutation) Tags(arg Arg) Tags {
	if m.Invalidates == nil {
		return nil
	}
	return m.Invalidates(arg)
}

func (m Mutation) method() string {
	if m.Method == "" {
		return http.MethodPost
	}
	return m.Method
}

// expandPath replaces the {id} placeholder with the escaped argument id.
func expandPath(path string, arg Arg) string {
	if !strings.Contains(path, "{id}") {
		return path
	}
	return strings.ReplaceAll(path, "{id}", url.PathEscape(arg.ID))
}
