package restdata

// Kind identifies which variant a Value holds.
type Kind int

// Value kinds.
const (
	KindAbsent Kind = iota
	KindScalar
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "absent"
	}
}

// Value is a decoded value: absent, a trimmed non-empty string, an ordered
// mapping, or a sequence. The zero Value is absent.
type Value struct {
	kind   Kind
	scalar string
	record *Record
	items  []Value
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Scalar returns a scalar value holding s.
func Scalar(s string) Value { return Value{kind: KindScalar, scalar: s} }

// Mapping returns a value wrapping r. A nil record is absent.
func Mapping(r *Record) Value {
	if r == nil {
		return Value{}
	}
	return Value{kind: KindMapping, record: r}
}

// Sequence returns a sequence value holding items in order.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, items: items}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v holds no value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Scalar returns the string held by a scalar value.
func (v Value) Scalar() (string, bool) {
	return v.scalar, v.kind == KindScalar
}

// String returns the scalar text, or "" for any other kind.
func (v Value) String() string {
	return v.scalar
}

// Record returns the mapping held by v, or nil.
func (v Value) Record() *Record {
	return v.record
}

// Items returns the elements of a sequence, or nil.
func (v Value) Items() []Value {
	return v.items
}

// Len returns the number of entries in a mapping or sequence.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return v.record.Len()
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Append returns a sequence with item added to the end. A non-sequence
// receiver is first promoted to a one-element sequence. Like the built-in
// append, the result may share storage with v.
func (v Value) Append(item Value) Value {
	if v.kind != KindSequence {
		return Sequence(v, item)
	}
	return Sequence(append(v.items, item)...)
}

// Equal reports whether v and other hold structurally equal values.
// Mapping equality is order-sensitive.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindMapping:
		return v.record.Equal(other.record)
	case KindSequence:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Interface converts v to plain Go values: nil, string, map[string]any or
// []any. Key order is lost for mappings.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMapping:
		return v.record.Map()
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}
