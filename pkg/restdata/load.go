package restdata

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/beevik/etree"
	"github.com/restdata/restdata/pkg/logging"
)

// Reserved keys used when an element carries both attributes and a
// non-mapping value.
const (
	TextKey  = "$text"
	ItemsKey = "$items"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// Decoder converts XML response text into Values. A Decoder holds no
// per-call state and is safe for concurrent use.
type Decoder struct {
	logger     *slog.Logger
	permissive bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPermissive makes the parser tolerate common markup mistakes such as
// unquoted attribute values. Structural contracts are still enforced.
func WithPermissive(permissive bool) Option {
	return func(d *Decoder) {
		d.permissive = permissive
	}
}

// NewDecoder creates a decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{logger: logging.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Load decodes text using the document's root element.
func Load(text string) (Value, error) {
	return defaultDecoder.Load(text, "")
}

// LoadMatch decodes the elements of text selected by match. See Decoder.Load.
func LoadMatch(text, match string) (Value, error) {
	return defaultDecoder.Load(text, match)
}

// LoadAll decodes the elements of text selected by match and returns one
// value per selected element. See Decoder.LoadAll.
func LoadAll(text, match string) ([]Value, error) {
	return defaultDecoder.LoadAll(text, match)
}

// Load decodes text. With an empty match the root element is converted;
// otherwise match is an etree path evaluated relative to the root element (a
// plain tag selects the root's children with that name, slash-separated tags
// form a path). Besides document prefixes (s:dict), a step may name its
// namespace in expanded form ({http://dev.splunk.com/ns/rest}dict).
//
// Blank text and zero matches yield an absent value, one match yields its
// value and several matches yield a sequence in document order.
func (d *Decoder) Load(text, match string) (Value, error) {
	values, err := d.LoadAll(text, match)
	if err != nil {
		return Value{}, err
	}
	switch len(values) {
	case 0:
		return Absent(), nil
	case 1:
		return values[0], nil
	default:
		return Sequence(values...), nil
	}
}

// LoadAll is like Load but always returns the per-element values. Blank text
// and zero matches yield an empty slice.
func (d *Decoder) LoadAll(text, match string) ([]Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	root, err := d.parse(text)
	if err != nil {
		return nil, err
	}

	candidates := []*etree.Element{root}
	if match != "" {
		path, err := compileMatch(match)
		if err != nil {
			return nil, fmt.Errorf("invalid match expression %q: %w", match, err)
		}
		candidates = root.FindElementsPath(path)
	}
	d.logger.Debug("decoding response", "root", root.Tag, "match", match, "candidates", len(candidates))

	values := make([]Value, 0, len(candidates))
	for _, el := range candidates {
		v, err := convertRoot(el)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// compileMatch compiles a match expression, rewriting {uri}local steps as
// local[namespace-uri()='uri'] since etree paths only know prefixes.
func compileMatch(match string) (etree.Path, error) {
	if !strings.Contains(match, "{") {
		return etree.CompilePath(match)
	}

	var b strings.Builder
	var quote byte
	for i := 0; i < len(match); i++ {
		c := match[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '{' && (i == 0 || match[i-1] == '/'):
			end := strings.IndexByte(match[i:], '}')
			if end < 0 {
				return etree.Path{}, errors.New("unterminated namespace URI")
			}
			uri := match[i+1 : i+end]
			rest := match[i+end+1:]
			n := strings.IndexAny(rest, "/[")
			if n < 0 {
				n = len(rest)
			}
			local := rest[:n]
			if local == "" || strings.ContainsRune(uri, '\'') {
				return etree.Path{}, fmt.Errorf("invalid expanded name {%s}%s", uri, local)
			}
			fmt.Fprintf(&b, "%s[namespace-uri()='%s']", local, uri)
			i += end + n
			continue
		}
		b.WriteByte(c)
	}
	return etree.CompilePath(b.String())
}

func (d *Decoder) parse(text string) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = d.permissive
	doc.ReadSettings.ValidateInput = !d.permissive
	if err := doc.ReadFromString(text); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	for _, t := range doc.Child {
		if cd, ok := t.(*etree.CharData); ok && !cd.IsWhitespace() {
			return nil, &SyntaxError{Err: errors.New("text outside the root element")}
		}
	}
	roots := doc.ChildElements()
	switch len(roots) {
	case 0:
		return nil, &SyntaxError{Err: errors.New("no root element")}
	case 1:
	default:
		return nil, &SyntaxError{Err: fmt.Errorf("%d root elements", len(roots))}
	}
	if err := checkPrefixes(roots[0]); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return roots[0], nil
}

// checkPrefixes rejects element and attribute prefixes that have no
// namespace declaration in scope.
func checkPrefixes(el *etree.Element) error {
	if el.Space != "" && el.Space != "xml" && el.NamespaceURI() == "" {
		return fmt.Errorf("unbound prefix %q in element <%s>", el.Space, el.FullTag())
	}
	for i := range el.Attr {
		a := &el.Attr[i]
		switch a.Space {
		case "", "xml", "xmlns":
			continue
		}
		if a.NamespaceURI() == "" {
			return fmt.Errorf("unbound prefix %q in attribute %s of <%s>", a.Space, a.FullKey(), el.FullTag())
		}
	}
	for _, child := range el.ChildElements() {
		if err := checkPrefixes(child); err != nil {
			return err
		}
	}
	return nil
}

// convertRoot applies the top-level wrapping rule: containers convert
// directly, any other element becomes a single-entry record keyed by its
// local name.
func convertRoot(el *etree.Element) (Value, error) {
	switch classify(el) {
	case RoleDict:
		return convertDict(el)
	case RoleList:
		return convertList(el)
	}
	name, v, err := convertElement(el)
	if err != nil {
		return Value{}, err
	}
	return Mapping(FromKV(name, v)), nil
}

// convertElement returns the element's local name and its value merged with
// its attributes.
func convertElement(el *etree.Element) (string, Value, error) {
	v, err := convertValue(el)
	if err != nil {
		return "", Value{}, err
	}
	return el.Tag, merge(attributes(el), v), nil
}

func convertValue(el *etree.Element) (Value, error) {
	children := el.ChildElements()
	switch len(children) {
	case 0:
		text := strings.TrimSpace(el.Text())
		if text == "" {
			return Absent(), nil
		}
		return Scalar(text), nil
	case 1:
		// A lone container is unwrapped so the parent does not gain an
		// extra "dict" or "list" level.
		switch classify(children[0]) {
		case RoleDict:
			return convertDict(children[0])
		case RoleList:
			return convertList(children[0])
		}
	}

	r := NewRecord()
	for _, child := range children {
		name, v, err := convertElement(child)
		if err != nil {
			return Value{}, err
		}
		r.add(name, v)
	}
	return Mapping(r), nil
}

func convertDict(el *etree.Element) (Value, error) {
	r := NewRecord()
	for _, child := range el.ChildElements() {
		if classify(child) != RoleKey {
			return Value{}, &StructureError{Container: RoleDict, Tag: expandedName(child), Expected: RoleKey}
		}
		name := child.SelectAttr("name")
		if name == nil {
			return Value{}, &StructureError{
				Container: RoleDict,
				Tag:       expandedName(child),
				Expected:  RoleKey,
				Detail:    "missing name attribute",
			}
		}
		v, err := convertValue(child)
		if err != nil {
			return Value{}, err
		}
		r.add(name.Value, v)
	}
	return Mapping(r), nil
}

func convertList(el *etree.Element) (Value, error) {
	children := el.ChildElements()
	items := make([]Value, 0, len(children))
	for _, child := range children {
		if classify(child) != RoleItem {
			return Value{}, &StructureError{Container: RoleList, Tag: expandedName(child), Expected: RoleItem}
		}
		v, err := convertValue(child)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	return Sequence(items...), nil
}

// attributes returns the element's attributes as a record, or nil when it
// has none. Namespace declarations are not attributes.
func attributes(el *etree.Element) *Record {
	var r *Record
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		if r == nil {
			r = NewRecord()
		}
		r.Set(attrName(a), Scalar(a.Value))
	}
	return r
}

func attrName(a *etree.Attr) string {
	switch {
	case a.Space == "":
		return a.Key
	case a.Space == "xml":
		return qualify(xmlNamespace, a.Key)
	}
	if uri := a.NamespaceURI(); uri != "" {
		return qualify(uri, a.Key)
	}
	return a.FullKey()
}

// merge combines an element's attributes with its converted value.
func merge(attrs *Record, v Value) Value {
	if attrs == nil {
		return v
	}
	switch v.Kind() {
	case KindScalar:
		attrs.Set(TextKey, v)
	case KindSequence:
		attrs.Set(ItemsKey, v)
	case KindMapping:
		// Attributes overwrite child entries of the same name.
		r := v.Record()
		attrs.Range(func(k string, av Value) bool {
			r.Set(k, av)
			return true
		})
		return v
	}
	return Mapping(attrs)
}
