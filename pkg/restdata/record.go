package restdata

// Record is an ordered mapping from string keys to values. Keys can be read
// and written either by key (Get, Set, Delete) or attribute style (Field,
// SetField, DeleteField); both forms address the same entries.
//
// A Record is not safe for concurrent mutation.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// RecordFrom returns a shallow copy of src. A nil src yields an empty record.
func RecordFrom(src *Record) *Record {
	r := NewRecord()
	if src == nil {
		return r
	}
	r.keys = append(make([]string, 0, len(src.keys)), src.keys...)
	for k, v := range src.values {
		r.values[k] = v
	}
	return r
}

// FromKV returns a record with the single entry key: value.
func FromKV(key string, value Value) *Record {
	r := NewRecord()
	r.Set(key, value)
	return r
}

// Len returns the number of entries.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Has reports whether key is present, including keys holding an absent value.
func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.values[key]
	return ok
}

// Lookup returns the value stored under key and whether it was present.
func (r *Record) Lookup(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Get returns the value stored under key. A missing key yields a
// *MissingFieldError; a present absent value yields Absent() and nil.
func (r *Record) Get(key string) (Value, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return Value{}, &MissingFieldError{Name: key}
	}
	return v, nil
}

// Set stores value under key. New keys are appended; existing keys keep
// their position. Like a map write, Set panics on a nil record.
func (r *Record) Set(key string, value Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// add stores value under key, promoting an existing entry to a sequence and
// appending value to it when key is already present.
func (r *Record) add(key string, value Value) {
	current, ok := r.values[key]
	if !ok {
		r.Set(key, value)
		return
	}
	if current.kind != KindSequence {
		current = Sequence(current)
	}
	current.items = append(current.items, value)
	r.values[key] = current
}

// Delete removes key. Deleting a missing key yields a *MissingFieldError.
func (r *Record) Delete(key string) error {
	if !r.Has(key) {
		return &MissingFieldError{Name: key}
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Field is the attribute-style form of Get.
func (r *Record) Field(name string) (Value, error) { return r.Get(name) }

// SetField is the attribute-style form of Set.
func (r *Record) SetField(name string, value Value) { r.Set(name, value) }

// DeleteField is the attribute-style form of Delete.
func (r *Record) DeleteField(name string) error { return r.Delete(name) }

// Text returns the scalar stored under key, or "" when the key is missing or
// does not hold a scalar.
func (r *Record) Text(key string) string {
	v, _ := r.Lookup(key)
	s, _ := v.Scalar()
	return s
}

// Range calls fn for each entry in order until fn returns false.
func (r *Record) Range(fn func(key string, value Value) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Equal reports whether r and other hold the same entries in the same order.
// A nil record equals an empty one.
func (r *Record) Equal(other *Record) bool {
	if r.Len() != other.Len() {
		return false
	}
	if r.Len() == 0 {
		return true
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		if !r.values[k].Equal(other.values[k]) {
			return false
		}
	}
	return true
}

// Map converts the record to a map of plain Go values. See Value.Interface.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	r.Range(func(k string, v Value) bool {
		out[k] = v.Interface()
		return true
	})
	return out
}
