package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Object is implemented by every PDF object type.
type Object interface {
	// String returns a PDF-ish textual form, used for error messages and tests.
	String() string
}

// Null represents the PDF null object.
type Null struct{}

func (Null) String() string { return "null" }

// Bool represents a PDF boolean.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents a PDF integer.
type Int int64

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real represents a PDF real number.
type Real float64

func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a PDF string. The bytes are kept as parsed; callers that
// need document text should run them through DecodeTextString.
type String string

func (s String) String() string { return "(" + string(s) + ")" }

// Name represents a PDF name such as /XObject.
type Name string

func (n Name) String() string { return "/" + string(n) }

// Array represents a PDF array.
type Array []Object

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, obj := range a {
		parts[i] = obj.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Float returns the element at index as a float64. Missing or non-numeric
// elements report ok=false.
func (a Array) Float(index int) (float64, bool) {
	if index < 0 || index >= len(a) {
		return 0, false
	}
	return ToFloat(a[index])
}

// Dict represents a PDF dictionary.
type Dict map[string]Object

func (d Dict) String() string {
	parts := make([]string, 0, len(d))
	for key, val := range d {
		parts = append(parts, fmt.Sprintf("/%s %s", key, val.String()))
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Get returns the raw value for key, or nil when absent.
func (d Dict) Get(key string) Object { return d[key] }

// Has reports whether key is present.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Set stores a value under key.
func (d Dict) Set(key string, value Object) { d[key] = value }

// GetName returns the value for key as a Name.
func (d Dict) GetName(key string) (Name, bool) {
	n, ok := d[key].(Name)
	return n, ok
}

// GetInt returns the value for key as an Int.
func (d Dict) GetInt(key string) (Int, bool) {
	i, ok := d[key].(Int)
	return i, ok
}

// GetFloat returns the value for key as a float64, accepting Int or Real.
func (d Dict) GetFloat(key string) (float64, bool) {
	obj, ok := d[key]
	if !ok {
		return 0, false
	}
	return ToFloat(obj)
}

// GetDict returns the value for key as a Dict.
func (d Dict) GetDict(key string) (Dict, bool) {
	dict, ok := d[key].(Dict)
	return dict, ok
}

// GetArray returns the value for key as an Array.
func (d Dict) GetArray(key string) (Array, bool) {
	arr, ok := d[key].(Array)
	return arr, ok
}

// GetString returns the value for key as a String.
func (d Dict) GetString(key string) (String, bool) {
	s, ok := d[key].(String)
	return s, ok
}

// GetRef returns the value for key as an IndirectRef.
func (d Dict) GetRef(key string) (IndirectRef, bool) {
	ref, ok := d[key].(IndirectRef)
	return ref, ok
}

// Stream represents a PDF stream object: a dictionary plus raw bytes.
type Stream struct {
	Dict Dict
	Data []byte
}

func (s *Stream) String() string {
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict.String(), len(s.Data))
}

// IndirectRef is a reference to a numbered object ("N G R").
type IndirectRef struct {
	Number     int
	Generation int
}

func (r IndirectRef) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// ToFloat converts a numeric object (Int or Real) to float64.
func ToFloat(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	default:
		return 0, false
	}
}
