package artifacts

import (
	"sort"
	"strconv"
)

// Record maps logical resource names to deployed values: contract addresses,
// code ids as decimal strings, and completion markers. A record only ever
// grows; no operation removes keys.
type Record map[string]string

// Has reports whether the record contains a value for key.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Get returns the value for key, or the empty string if absent.
func (r Record) Get(key string) string {
	return r[key]
}

// Uint64 parses the value for key as a decimal unsigned integer.
func (r Record) Uint64(key string) (uint64, error) {
	v, ok := r[key]
	if !ok {
		return 0, &PersistenceError{Op: "lookup", Detail: "missing key " + key}
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, &PersistenceError{Op: "lookup", Detail: "key " + key + " is not a decimal integer", Err: err}
	}
	return n, nil
}

// Set stores value under key.
func (r Record) Set(key, value string) {
	r[key] = value
}

// SetUint64 stores a decimal rendering of value under key.
func (r Record) SetUint64(key string, value uint64) {
	r[key] = strconv.FormatUint(value, 10)
}

// Merge copies every entry of delta into the record.
func (r Record) Merge(delta Record) {
	for k, v := range delta {
		r[k] = v
	}
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
