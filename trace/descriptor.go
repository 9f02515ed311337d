package trace

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMarker introduces an appended descriptor comment. It matches
// the comment syntax of the analysis scripts this tool is aimed at;
// use WithMarker("// ") when annotating C-family sources.
const DefaultMarker = "# "

// Shaped is the shape-like capability: the dimensions of an
// array-like value, outermost first.
type Shaped interface {
	Shape() []int
}

// Typed is the type-like capability: a stringifiable element-type tag
// such as "int64" or "torch.float32".
type Typed interface {
	DType() string
}

// commentPattern matches a descriptor comment at the end of a line,
// marker included, for either supported marker.
var commentPattern = regexp.MustCompile(`(?:# |// )[A-Za-z_][A-Za-z0-9_]*\((?:\d+,|\d+(?:, \d+)+)?\)$`)

// Describe summarizes v as "<elementType><shapeTuple>", e.g.
// "int64(2, 6)". ok is false when v lacks either capability. Probing
// an arbitrary value must never escape with a panic; any failure
// while reading its attributes is reported as not annotatable.
func Describe(v any) (d string, ok bool) {
	defer func() {
		if recover() != nil {
			d, ok = "", false
		}
	}()

	shape, hasShape := shapeOf(v)
	tag, hasType := dtypeOf(v)

	if !hasShape || !hasType {
		return "", false
	}

	return elementType(tag) + FormatShape(shape), true
}

// FormatShape renders dims tuple-style: "(2, 6)", "(12,)" for a
// single dimension, "()" for none.
func FormatShape(dims []int) string {
	switch len(dims) {
	case 0:
		return "()"
	case 1:
		return "(" + strconv.Itoa(dims[0]) + ",)"
	}

	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		parts = append(parts, strconv.Itoa(d))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// FindDescriptor reports the descriptor trailing line, without the
// marker that introduced it. The line must not include its
// end-of-line characters.
func FindDescriptor(line string) (string, bool) {
	loc := commentPattern.FindStringIndex(line)
	if loc == nil {
		return "", false
	}

	match := line[loc[0]:]
	if rest, found := strings.CutPrefix(match, "# "); found {
		return rest, true
	}

	return strings.TrimPrefix(match, "// "), true
}

// StripDescriptor returns line with a trailing descriptor comment
// removed, and whether one was present.
func StripDescriptor(line string) (string, bool) {
	loc := commentPattern.FindStringIndex(line)
	if loc == nil {
		return line, false
	}

	return line[:loc[0]], true
}

// elementType keeps the last dot-segment of a type tag, so
// "torch.int64" and "int64" both describe as "int64".
func elementType(tag string) string {
	if i := strings.LastIndexByte(tag, '.'); i >= 0 {
		return tag[i+1:]
	}

	return tag
}

var intSliceType = reflect.TypeOf([]int(nil))

// shapeOf extracts the dimensions of v. Beyond the Shaped interface
// it accepts, via reflection, a niladic Shape method returning an
// integer slice or an exported Shape field holding one, so values
// from foreign numeric libraries need no wrapper.
func shapeOf(v any) ([]int, bool) {
	if s, ok := v.(Shaped); ok {
		return s.Shape(), true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}

	if m := rv.MethodByName("Shape"); m.IsValid() {
		if dims, ok := callDims(m); ok {
			return dims, true
		}
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Struct {
		f := rv.FieldByName("Shape")
		if f.IsValid() && f.CanInterface() {
			if dims, ok := toDims(f); ok {
				return dims, true
			}
		}
	}

	return nil, false
}

// dtypeOf extracts the element-type tag of v, accepting a DType
// method or field holding a string or fmt.Stringer.
func dtypeOf(v any) (string, bool) {
	if t, ok := v.(Typed); ok {
		return t.DType(), true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "", false
	}

	if m := rv.MethodByName("DType"); m.IsValid() {
		if tag, ok := callTag(m); ok {
			return tag, true
		}
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}

		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Struct {
		f := rv.FieldByName("DType")
		if f.IsValid() && f.CanInterface() {
			if tag, ok := toTag(f); ok {
				return tag, true
			}
		}
	}

	return "", false
}

func callDims(m reflect.Value) ([]int, bool) {
	t := m.Type()
	if t.NumIn() != 0 || t.NumOut() != 1 {
		return nil, false
	}

	return toDims(m.Call(nil)[0])
}

func toDims(v reflect.Value) ([]int, bool) {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	if !v.IsValid() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}

	if v.Type().ConvertibleTo(intSliceType) {
		return v.Convert(intSliceType).Interface().([]int), true
	}

	dims := make([]int, 0, v.Len())

	for i := 0; i < v.Len(); i++ {
		e := v.Index(i)
		switch e.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dims = append(dims, int(e.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dims = append(dims, int(e.Uint()))
		default:
			return nil, false
		}
	}

	return dims, true
}

func callTag(m reflect.Value) (string, bool) {
	t := m.Type()
	if t.NumIn() != 0 || t.NumOut() != 1 {
		return "", false
	}

	return toTag(m.Call(nil)[0])
}

func toTag(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	if !v.IsValid() {
		return "", false
	}

	if v.Kind() == reflect.String {
		return v.String(), true
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}

	return "", false
}
