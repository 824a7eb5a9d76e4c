package restdata

import (
	"strings"

	"github.com/beevik/etree"
)

// NamespaceREST is the namespace URI used by the structural wrapper elements.
// Some endpoints (search/parser, for example) emit the same elements without
// a namespace, so both spellings are recognized.
const NamespaceREST = "http://dev.splunk.com/ns/rest"

// Role is the structural role an element plays during conversion.
type Role int

// Structural roles.
const (
	RoleNone Role = iota
	RoleDict
	RoleList
	RoleItem
	RoleKey
)

func (r Role) String() string {
	switch r {
	case RoleDict:
		return "dict"
	case RoleList:
		return "list"
	case RoleItem:
		return "item"
	case RoleKey:
		return "key"
	default:
		return "none"
	}
}

// roles maps every accepted spelling of a structural tag to its role.
var roles = func() map[string]Role {
	m := make(map[string]Role, 8)
	for _, r := range []Role{RoleDict, RoleList, RoleItem, RoleKey} {
		m[r.String()] = r
		m[qualify(NamespaceREST, r.String())] = r
	}
	return m
}()

// Classify returns the structural role for an expanded element name. The
// name is either bare ("dict") or qualified with a namespace URI in braces
// ("{http://dev.splunk.com/ns/rest}dict"). Unknown names are RoleNone.
func Classify(name string) Role {
	return roles[name]
}

// LocalName strips a leading "{uri}" qualifier from an expanded name.
func LocalName(name string) string {
	if i := strings.IndexByte(name, '}'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func qualify(uri, local string) string {
	if uri == "" {
		return local
	}
	return "{" + uri + "}" + local
}

// expandedName returns the element's tag qualified by its resolved namespace
// URI. Prefixes that do not resolve fall back to the prefixed tag.
func expandedName(el *etree.Element) string {
	if uri := el.NamespaceURI(); uri != "" {
		return qualify(uri, el.Tag)
	}
	return el.FullTag()
}

func classify(el *etree.Element) Role {
	return Classify(expandedName(el))
}
