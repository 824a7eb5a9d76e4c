// Package httputil provides shared HTTP utilities for writing XML responses
// in the shape management endpoints use.
package httputil

import (
	"net/http"

	"github.com/beevik/etree"
)

// ContentTypeXML is the content type of every response written here.
const ContentTypeXML = "text/xml; charset=utf-8"

// Message is one <msg> entry of an error or status response.
type Message struct {
	Type string
	Text string
}

// WriteXML writes doc with the given status code.
func WriteXML(w http.ResponseWriter, status int, doc *etree.Document) {
	w.Header().Set("Content-Type", ContentTypeXML)
	w.WriteHeader(status)
	if doc != nil {
		_, _ = doc.WriteTo(w)
	}
}

// WriteBody writes a raw XML body with the given status code.
func WriteBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", ContentTypeXML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// NewDocument returns an empty document with an XML declaration.
func NewDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}

// MessagesDocument builds <response><messages><msg type="...">...</msg>
// </messages></response>.
func MessagesDocument(msgs ...Message) *etree.Document {
	doc := NewDocument()
	list := doc.CreateElement("response").CreateElement("messages")
	for _, m := range msgs {
		msg := list.CreateElement("msg")
		if m.Type != "" {
			msg.CreateAttr("type", m.Type)
		}
		msg.SetText(m.Text)
	}
	doc.Indent(2)
	return doc
}

// WriteMessages writes a messages response with the given status code.
func WriteMessages(w http.ResponseWriter, status int, msgs ...Message) {
	WriteXML(w, status, MessagesDocument(msgs...))
}

// WriteError writes a single ERROR message with the given status code.
func WriteError(w http.ResponseWriter, status int, text string) {
	WriteMessages(w, status, Message{Type: "ERROR", Text: text})
}

// WriteNotFound writes a 404 Not Found error response.
func WriteNotFound(w http.ResponseWriter, text string) {
	WriteError(w, http.StatusNotFound, text)
}

// WriteUnauthorized writes a 401 Unauthorized response with a WARN message.
func WriteUnauthorized(w http.ResponseWriter, text string) {
	WriteMessages(w, http.StatusUnauthorized, Message{Type: "WARN", Text: text})
}
