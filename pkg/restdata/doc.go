// Package restdata decodes the XML responses of ATOM-style REST management
// APIs into ordered, native values.
//
// Responses mix generic elements with four structural wrappers, each spelled
// either bare or in the REST namespace:
//
//	<dict>  children are <key name="..."> elements, decodes to a mapping
//	<list>  children are <item> elements, decodes to a sequence
//	<key>   one entry of a dict
//	<item>  one entry of a list
//
// # Usage
//
//	v, err := restdata.LoadMatch(body, "entry")
//	if err != nil {
//	    return err
//	}
//	for _, entry := range v.Items() {
//	    title, err := entry.Record().Field("entry")
//	    ...
//	}
//
// # Conversion rules
//
// An element without children decodes to its trimmed text, or to the absent
// value when the text is blank. An element whose only child is a dict or list
// decodes to that container's value. Any other element decodes to a mapping
// from child local names to child values; a name seen twice is promoted to a
// sequence holding every value in document order.
//
// Attributes are merged with the element's value: a scalar is stored under
// TextKey, a sequence under ItemsKey, and a mapping receives the attributes
// as additional entries.
//
// Selected top-level elements that are not containers are wrapped in a
// single-entry record keyed by their local name.
//
// # Errors
//
// Unparseable text yields an error matching ErrMalformedXML; a container with
// the wrong kind of child yields a *StructureError matching
// ErrMalformedStructure. Record lookups of missing names return a
// *MissingFieldError matching ErrMissingField, which never wraps either
// malformed error.
package restdata
