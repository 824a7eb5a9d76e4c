package resttest

import (
	"github.com/beevik/etree"

	"github.com/restdata/restdata/pkg/httputil"
)

// Namespaces used in generated feeds.
const (
	AtomNamespace = "http://www.w3.org/2005/Atom"
	RESTNamespace = "http://dev.splunk.com/ns/rest"
)

// FieldValue is the value of a content field: a string, a list of strings
// or a nested dict of fields.
type FieldValue interface {
	build(parent *etree.Element)
}

type text string

func (t text) build(parent *etree.Element) { parent.SetText(string(t)) }

type list []string

func (l list) build(parent *etree.Element) {
	el := parent.CreateElement("s:list")
	for _, item := range l {
		el.CreateElement("s:item").SetText(item)
	}
}

type dict []field

func (d dict) build(parent *etree.Element) {
	el := parent.CreateElement("s:dict")
	for _, f := range d {
		key := el.CreateElement("s:key")
		key.CreateAttr("name", f.name)
		f.value.build(key)
	}
}

type field struct {
	name  string
	value FieldValue
}

// Text is a scalar field value.
func Text(s string) FieldValue { return text(s) }

// List is a list field value.
func List(items ...string) FieldValue { return list(items) }

// Dict is a nested dict field value.
func Dict(fields ...*EntryField) FieldValue {
	d := make(dict, len(fields))
	for i, f := range fields {
		d[i] = field(*f)
	}
	return d
}

// EntryField is one key of an entry's content dict.
type EntryField field

// Field returns a scalar content field.
func Field(name, value string) *EntryField {
	return &EntryField{name: name, value: text(value)}
}

// FieldOf returns a content field with an arbitrary value.
func FieldOf(name string, value FieldValue) *EntryField {
	return &EntryField{name: name, value: value}
}

// EntryBuilder describes one feed entry.
type EntryBuilder struct {
	title   string
	content []*EntryField
}

// Entry returns an entry with the given title and content fields. An entry
// without fields has no content element.
func Entry(title string, fields ...*EntryField) *EntryBuilder {
	return &EntryBuilder{title: title, content: fields}
}

// Feed builds an ATOM feed document holding entries in order.
func Feed(entries ...*EntryBuilder) *etree.Document {
	doc := httputil.NewDocument()
	feed := doc.CreateElement("feed")
	feed.CreateAttr("xmlns", AtomNamespace)
	feed.CreateAttr("xmlns:s", RESTNamespace)
	for _, e := range entries {
		entry := feed.CreateElement("entry")
		entry.CreateElement("title").SetText(e.title)
		if len(e.content) == 0 {
			continue
		}
		content := entry.CreateElement("content")
		content.CreateAttr("type", "text/xml")
		Dict(e.content...).build(content)
	}
	doc.Indent(2)
	return doc
}
