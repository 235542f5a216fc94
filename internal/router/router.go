// Package router implements a segment-based router: routes are (method,
// path pattern, handler); patterns are slash-separated literal segments
// or {name} capture segments.
//
// Grounded on curol-go-net/message/server/router.go's Router — the genuinely
// custom, method+path keyed handler map with a NotFound fallback — and
// deliberately not on curol-go-net/http/mux.go, which is a near-verbatim
// port of net/http.ServeMux and was not used as a style source here.
package router

import (
	"strings"

	"github.com/meridianhq/originhttp/internal/request"
	"github.com/meridianhq/originhttp/internal/response"
	"github.com/meridianhq/originhttp/internal/wire"
)

// Params holds the values captured from {name} segments.
type Params map[string]string

// HandlerFunc handles a matched request and returns the response to send.
type HandlerFunc func(req *request.Request, params Params) *response.Response

type route struct {
	method   wire.Method
	segments []string // "" for a literal empty segment never occurs; "{name}" marks a capture
	handler  HandlerFunc
}

// Router matches a request's method and path against registered patterns.
type Router struct {
	routes   []route
	notFound HandlerFunc
}

// New returns an empty Router that falls back to notFound when no route
// matches.
func New(notFound HandlerFunc) *Router {
	return &Router{notFound: notFound}
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Handle registers pattern (e.g. "/files/{filename}") for method.
func (r *Router) Handle(method wire.Method, pattern string, handler HandlerFunc) {
	r.routes = append(r.routes, route{method: method, segments: splitPath(pattern), handler: handler})
}

// Route finds the first matching route and invokes its handler, or falls
// back to the NotFound handler when nothing matches.
func (r *Router) Route(req *request.Request) *response.Response {
	reqSegments := splitPath(req.Path)
	for _, rt := range r.routes {
		if rt.method != req.Method {
			continue
		}
		if params, ok := match(rt.segments, reqSegments); ok {
			return rt.handler(req, params)
		}
	}
	return r.notFound(req, nil)
}

func match(pattern, path []string) (Params, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	var params Params
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if params == nil {
				params = make(Params)
			}
			params[seg[1:len(seg)-1]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}
