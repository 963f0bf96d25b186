package value

import (
	"cmp"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

const (
	// bytesKey marks an object holding a byte slice as standard base64.
	bytesKey = "$bytes"
	// mapKey marks an object holding a map with non-string keys as a list
	// of [key, value] pairs.
	mapKey = "$map"
	// keyEscape prefixes object keys that start with it, so user keys never
	// collide with bytesKey or mapKey.
	keyEscape = "$"
)

//nolint:gochecknoglobals
var numberType = reflect.TypeOf(json.Number(""))

// FormatLiteral renders v as JSON text that ParseLiteral turns back into an
// equivalent value. Integers are written without a fraction and floats always
// carry one, so the two stay distinguishable.
//
// Supported: nil, bool, string, every integer and float kind, slices, arrays,
// maps and pointers to those. Structs are carried through their JSON encoding
// and come back as map[string]any.
//
// Byte slices and arrays nested anywhere in v are written as {"$bytes": base64}
// and come back as []byte. Maps keyed by bools, numbers or interfaces holding
// those are written as {"$map": [[key, value], ...]} sorted by key and come
// back as map[any]any. Object keys starting with "$" are escaped by doubling
// the "$".
func FormatLiteral(v any) (string, error) {
	tree, err := literalTree(reflect.ValueOf(v))
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnrepresentable, err)
	}

	return string(data), nil
}

//nolint:cyclop
func literalTree(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil //nolint:nilnil
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil, nil //nolint:nilnil
		}

		return literalTree(rv.Elem())
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		if rv.Type() == numberType {
			return json.Number(rv.String()), nil
		}

		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return json.Number(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return json.Number(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return bytesTree(rv), nil
		}

		list := make([]any, rv.Len())

		for i := range list {
			item, err := literalTree(rv.Index(i))
			if err != nil {
				return nil, err
			}

			list[i] = item
		}

		return list, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return pairsTree(rv)
		}

		object := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			item, err := literalTree(iter.Value())
			if err != nil {
				return nil, err
			}

			object[escapeKey(iter.Key().String())] = item
		}

		return object, nil
	case reflect.Struct:
		return structTree(rv)
	default:
		return nil, fmt.Errorf("%w: type %s", ErrUnrepresentable, rv.Type())
	}
}

func structTree(rv reflect.Value) (any, error) {
	if !rv.CanInterface() {
		return nil, fmt.Errorf("%w: unexported struct %s", ErrUnrepresentable, rv.Type())
	}

	data, err := json.Marshal(rv.Interface())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrepresentable, err)
	}

	tree, err := decodeTree(string(data))
	if err != nil {
		return nil, err
	}

	// Field names go through key escaping like any other object.
	return literalTree(reflect.ValueOf(tree))
}

func bytesTree(rv reflect.Value) any {
	raw := make([]byte, rv.Len())

	for i := range raw {
		raw[i] = byte(rv.Index(i).Uint())
	}

	return map[string]any{bytesKey: base64.StdEncoding.EncodeToString(raw)}
}

// pairsTree writes a map with non-string keys as sorted [key, value] pairs.
func pairsTree(rv reflect.Value) (any, error) {
	type pair struct {
		sortKey string
		entry   []any
	}

	pairs := make([]pair, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key, err := keyTree(iter.Key())
		if err != nil {
			return nil, err
		}

		item, err := literalTree(iter.Value())
		if err != nil {
			return nil, err
		}

		sortKey, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnrepresentable, err)
		}

		pairs = append(pairs, pair{sortKey: string(sortKey), entry: []any{key, item}})
	}

	slices.SortFunc(pairs, func(a, b pair) int { return cmp.Compare(a.sortKey, b.sortKey) })

	entries := make([]any, len(pairs))
	for i, p := range pairs {
		entries[i] = p.entry
	}

	return map[string]any{mapKey: entries}, nil
}

// keyTree converts a map key, which must be a scalar that survives as a map
// key after parsing.
func keyTree(rv reflect.Value) (any, error) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil map key", ErrUnrepresentable)
		}

		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return literalTree(rv)
	default:
		return nil, fmt.Errorf("%w: map key type %s", ErrUnrepresentable, rv.Type())
	}
}

func escapeKey(key string) string {
	if strings.HasPrefix(key, keyEscape) {
		return keyEscape + key
	}

	return key
}

func formatFloat(f float64, bits int) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite float %v", ErrUnrepresentable, f)
	}

	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return json.Number(s), nil
}

// ParseLiteral parses text produced by FormatLiteral. Integer literals become
// int (uint64 when they exceed int), fractional or exponent literals float64,
// arrays []any and objects map[string]any, except for the "$bytes" and "$map"
// forms which become []byte and map[any]any.
func ParseLiteral(s string) (any, error) {
	tree, err := decodeTree(s)
	if err != nil {
		return nil, err
	}

	return fromTree(tree)
}

func decodeTree(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLiteral, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after literal", ErrLiteral)
	}

	return tree, nil
}

func fromTree(tree any) (any, error) {
	switch node := tree.(type) {
	case json.Number:
		return parseNumber(node)
	case []any:
		for i, item := range node {
			converted, err := fromTree(item)
			if err != nil {
				return nil, err
			}

			node[i] = converted
		}

		return node, nil
	case map[string]any:
		return fromObject(node)
	default:
		return node, nil
	}
}

func fromObject(node map[string]any) (any, error) {
	if len(node) == 1 {
		if encoded, ok := node[bytesKey]; ok {
			return fromBytes(encoded)
		}

		if entries, ok := node[mapKey]; ok {
			return fromPairs(entries)
		}
	}

	object := make(map[string]any, len(node))

	for key, item := range node {
		converted, err := fromTree(item)
		if err != nil {
			return nil, err
		}

		object[strings.TrimPrefix(key, keyEscape)] = converted
	}

	return object, nil
}

func fromBytes(encoded any) (any, error) {
	s, ok := encoded.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must hold a string", ErrLiteral, bytesKey)
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLiteral, bytesKey, err)
	}

	return raw, nil
}

func fromPairs(entries any) (any, error) {
	list, ok := entries.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must hold a list of pairs", ErrLiteral, mapKey)
	}

	out := make(map[any]any, len(list))

	for _, entry := range list {
		pair, ok := entry.([]any)
		if !ok || len(pair) != 2 { //nolint:mnd
			return nil, fmt.Errorf("%w: %s entries must be [key, value] pairs", ErrLiteral, mapKey)
		}

		key, err := fromTree(pair[0])
		if err != nil {
			return nil, err
		}

		if key == nil || !reflect.TypeOf(key).Comparable() {
			return nil, fmt.Errorf("%w: %s key %v cannot index a map", ErrLiteral, mapKey, key)
		}

		item, err := fromTree(pair[1])
		if err != nil {
			return nil, err
		}

		out[key] = item
	}

	return out, nil
}

func parseNumber(n json.Number) (any, error) {
	s := n.String()

	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLiteral, err)
		}

		return f, nil
	}

	if i, err := strconv.ParseInt(s, 10, strconv.IntSize); err == nil {
		return int(i), nil
	}

	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: integer %s out of range", ErrLiteral, s)
	}

	return u, nil
}
