package resttest

import (
	"net/http"
	"net/url"

	"github.com/beevik/etree"

	"github.com/restdata/restdata/pkg/httputil"
)

type endpoint struct {
	status int
	header http.Header
	body   string
	doc    *etree.Document
	pages  map[string]*etree.Document // by "count" query value
}

func (e *endpoint) write(w http.ResponseWriter, query url.Values) {
	for k, v := range e.header {
		w.Header()[k] = v
	}
	if doc, ok := e.pages[query.Get("count")]; ok {
		httputil.WriteXML(w, e.status, doc)
		return
	}
	if e.doc != nil {
		httputil.WriteXML(w, e.status, e.doc)
		return
	}
	httputil.WriteBody(w, e.status, e.body)
}

// EndpointBuilder configures an endpoint response using a fluent API.
type EndpointBuilder struct {
	server   *Server
	key      string
	endpoint *endpoint
}

// WithStatus sets the response status code. Default is 200 (OK).
func (b *EndpointBuilder) WithStatus(status int) *EndpointBuilder {
	b.endpoint.status = status
	return b
}

// WithHeader sets a response header.
func (b *EndpointBuilder) WithHeader(key, value string) *EndpointBuilder {
	b.endpoint.header.Set(key, value)
	return b
}

// WithBody sets a raw response body.
func (b *EndpointBuilder) WithBody(body string) *EndpointBuilder {
	b.endpoint.body = body
	b.endpoint.doc = nil
	return b
}

// WithFeed responds with an ATOM feed holding entries.
func (b *EndpointBuilder) WithFeed(entries ...*EntryBuilder) *EndpointBuilder {
	b.endpoint.doc = Feed(entries...)
	return b
}

// WithPage responds with a feed of entries when the request's count query
// parameter equals count.
func (b *EndpointBuilder) WithPage(count string, entries ...*EntryBuilder) *EndpointBuilder {
	if b.endpoint.pages == nil {
		b.endpoint.pages = make(map[string]*etree.Document)
	}
	b.endpoint.pages[count] = Feed(entries...)
	return b
}

// WithMessages responds with a messages document.
func (b *EndpointBuilder) WithMessages(msgs ...httputil.Message) *EndpointBuilder {
	b.endpoint.doc = httputil.MessagesDocument(msgs...)
	return b
}

// Reply registers the endpoint, replacing any earlier one for the same
// method and path.
func (b *EndpointBuilder) Reply() *Server {
	b.server.add(b.key, b.endpoint)
	return b.server
}
