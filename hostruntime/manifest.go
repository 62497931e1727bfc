package hostruntime

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// manifest is the subset of a package.json this resolver consults.
type manifest struct {
	main    string
	exports orderedValue // zero value (kind valueKindAbsent) if the field is absent
}

type valueKind int

const (
	valueKindAbsent valueKind = iota
	valueKindString
	valueKindObject
	valueKindOther
)

// orderedValue is a JSON value parsed with object key order preserved, since
// conditional-exports resolution depends on iterating condition keys in the
// order the manifest author wrote them.
type orderedValue struct {
	kind    valueKind
	str     string
	entries []orderedEntry // valueKindObject only, in source order
}

type orderedEntry struct {
	key   string
	value orderedValue
}

// get returns the value for key in an object-kind orderedValue, and whether
// it was present.
func (v orderedValue) get(key string) (orderedValue, bool) {
	for _, e := range v.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return orderedValue{}, false
}

// parseManifest decodes the package.json found in r, preserving the key
// order of the top-level "exports" field (and any nested condition maps)
// while taking only the fields this resolver needs.
func parseManifest(r io.Reader) (manifest, error) {
	dec := jsoniter.NewDecoder(r)

	root, err := parseOrderedValue(dec)
	if err != nil {
		return manifest{}, err
	}
	if root.kind != valueKindObject {
		return manifest{}, nil
	}

	m := manifest{main: "index.js"}
	if mainVal, ok := root.get("main"); ok && mainVal.kind == valueKindString {
		m.main = mainVal.str
	}
	if exportsVal, ok := root.get("exports"); ok {
		m.exports = exportsVal
	}
	return m, nil
}

// parseOrderedValue reads one JSON value from dec, preserving object key
// order. Arrays and scalars other than strings are parsed but collapsed to
// valueKindOther, since the resolution algorithm never inspects them.
func parseOrderedValue(dec *jsoniter.Decoder) (orderedValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return orderedValue{}, err
	}
	return parseOrderedValueFromToken(dec, tok)
}

func parseOrderedValueFromToken(dec *jsoniter.Decoder, tok jsoniter.Token) (orderedValue, error) {
	switch t := tok.(type) {
	case string:
		return orderedValue{kind: valueKindString, str: t}, nil
	case jsoniter.Delim:
		switch t {
		case jsoniter.Delim('{'):
			var entries []orderedEntry
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return orderedValue{}, err
				}
				key, _ := keyTok.(string)
				val, err := parseOrderedValue(dec)
				if err != nil {
					return orderedValue{}, err
				}
				entries = append(entries, orderedEntry{key: key, value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return orderedValue{}, err
			}
			return orderedValue{kind: valueKindObject, entries: entries}, nil
		case jsoniter.Delim('['):
			for dec.More() {
				if _, err := parseOrderedValue(dec); err != nil {
					return orderedValue{}, err
				}
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return orderedValue{}, err
			}
			return orderedValue{kind: valueKindOther}, nil
		}
	}
	return orderedValue{kind: valueKindOther}, nil
}
