// Package wire decodes and encodes fully materialized element trees as
// JSON. This is a serialization of an already-compiled tree, not an
// authoring syntax: component references resolve through the catalog at
// construction time only, exactly the lookup capability the engine consumes.
//
// Node format:
//
//	{"type": "Section", "id": "s1", "props": {...}, "children": [...]}
//
// The reserved type names "#text" and "#fragment" select the primitive
// markers. A child or prop value of the form {"$ref": "<id>", "path":
// ["score"]} becomes a deferred reference to the element declared with that
// id earlier in document order.
//
// Inside prop and child values the object keys "$ref" and "type" are
// reserved: an object carrying "type" is always decoded as an inline
// element, so plain data objects must not use either key.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/element"
)

// Decode parses a JSON document into an element tree, resolving component
// names through the catalog.
func Decode(data []byte, catalog *component.Catalog) (*element.Element, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root must be an element object")
	}

	d := &decoder{catalog: catalog, byID: make(map[string]*element.Element)}
	return d.decodeElement(m)
}

type decoder struct {
	catalog *component.Catalog
	byID    map[string]*element.Element
}

func (d *decoder) decodeElement(m map[string]any) (*element.Element, error) {
	typeName, _ := m["type"].(string)
	if typeName == "" {
		return nil, fmt.Errorf("element is missing its type")
	}

	props := make(map[string]cty.Value)
	if rawProps, ok := m["props"].(map[string]any); ok {
		for k, v := range rawProps {
			pv, err := d.decodeValue(v)
			if err != nil {
				return nil, fmt.Errorf("prop %q: %w", k, err)
			}
			props[k] = pv
		}
	}

	var children []cty.Value
	if rawChildren, ok := m["children"].([]any); ok {
		for i, c := range rawChildren {
			cv, err := d.decodeValue(c)
			if err != nil {
				return nil, fmt.Errorf("child %d of %s: %w", i, typeName, err)
			}
			children = append(children, cv)
		}
	}

	var el *element.Element
	switch typeName {
	case "#text":
		el = element.New(element.TextType(), props, children...)
	case "#fragment":
		el = element.New(element.FragmentType(), props, children...)
	default:
		comp, ok := d.catalog.Component(typeName)
		if !ok {
			return nil, fmt.Errorf("unknown component %q", typeName)
		}
		el = element.New(element.ComponentType(comp), props, children...)
	}

	if id, ok := m["id"].(string); ok && id != "" {
		if _, exists := d.byID[id]; exists {
			return nil, fmt.Errorf("duplicate element id %q", id)
		}
		d.byID[id] = el
	}
	return el, nil
}

func (d *decoder) decodeValue(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case json.Number:
		n, err := cty.ParseNumberVal(val.String())
		if err != nil {
			return cty.NilVal, fmt.Errorf("invalid number %q", val.String())
		}
		return n, nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(val))
		for i, item := range val {
			cv, err := d.decodeValue(item)
			if err != nil {
				return cty.NilVal, err
			}
			vals[i] = cv
		}
		return cty.TupleVal(vals), nil
	case map[string]any:
		if _, isRef := val["$ref"]; isRef {
			return d.decodeRef(val)
		}
		if _, isElement := val["type"]; isElement {
			el, err := d.decodeElement(val)
			if err != nil {
				return cty.NilVal, err
			}
			return element.Val(el), nil
		}
		return d.decodeObject(val)
	}
	return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
}

// decodeRef turns {"$ref": id, "path": [...]} into a deferred reference.
// The target must have been declared (with an id) earlier in document
// order; forward references are not representable.
func (d *decoder) decodeRef(m map[string]any) (cty.Value, error) {
	id, _ := m["$ref"].(string)
	target, ok := d.byID[id]
	if !ok {
		return cty.NilVal, fmt.Errorf("$ref %q does not name an element declared earlier in the document", id)
	}

	var path cty.Path
	if rawPath, ok := m["path"].([]any); ok {
		for _, seg := range rawPath {
			switch s := seg.(type) {
			case string:
				path = path.GetAttr(s)
			case json.Number:
				i, err := s.Int64()
				if err != nil {
					return cty.NilVal, fmt.Errorf("$ref %q: non-integer index %q", id, s.String())
				}
				path = path.Index(cty.NumberIntVal(i))
			default:
				return cty.NilVal, fmt.Errorf("$ref %q: path segments must be strings or integers", id)
			}
		}
	}
	return element.Deferred(target, path), nil
}

// decodeObject round-trips a plain JSON object through cty's JSON codec so
// the result carries a proper object type.
func (d *decoder) decodeObject(m map[string]any) (cty.Value, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return cty.NilVal, err
	}
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(raw, ty)
}
