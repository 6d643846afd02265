package wire

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/apowers313/pupt/internal/element"
)

// Encode serializes an element tree back to its JSON form. Every element is
// assigned a sequential id so deferred references stay representable.
func Encode(root *element.Element) ([]byte, error) {
	e := &encoder{ids: make(map[string]string)}
	e.assignIDs(root)
	doc, err := e.encodeElement(root)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

type encoder struct {
	// ids maps element instance identity to the short document-local id.
	ids  map[string]string
	next int
}

// assignIDs walks the tree pre-order so every element, including deferred
// targets, has an id before encoding starts.
func (e *encoder) assignIDs(el *element.Element) {
	if el == nil {
		return
	}
	if _, ok := e.ids[el.ID()]; ok {
		return
	}
	e.next++
	e.ids[el.ID()] = fmt.Sprintf("e%d", e.next)

	for _, v := range el.Props() {
		e.assignIDsInValue(v)
	}
	for _, v := range el.Children() {
		e.assignIDsInValue(v)
	}
}

func (e *encoder) assignIDsInValue(v cty.Value) {
	if child, ok := element.FromValue(v); ok {
		e.assignIDs(child)
		return
	}
	if ref, ok := element.DeferredFromValue(v); ok {
		e.assignIDs(ref.Element)
		return
	}
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return
	}
	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() || ty.IsObjectType() || ty.IsMapType() {
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			e.assignIDsInValue(ev)
		}
	}
}

func (e *encoder) encodeElement(el *element.Element) (map[string]any, error) {
	doc := map[string]any{"id": e.ids[el.ID()]}

	switch el.Type().Kind() {
	case element.KindText:
		doc["type"] = "#text"
	case element.KindFragment:
		doc["type"] = "#fragment"
	default:
		comp, ok := el.Type().Component().(interface{ Name() string })
		if !ok {
			return nil, fmt.Errorf("element component does not expose a name")
		}
		doc["type"] = comp.Name()
	}

	if len(el.Props()) > 0 {
		props := make(map[string]any, len(el.Props()))
		for k, v := range el.Props() {
			ev, err := e.encodeValue(v)
			if err != nil {
				return nil, fmt.Errorf("prop %q: %w", k, err)
			}
			props[k] = ev
		}
		doc["props"] = props
	}

	if len(el.Children()) > 0 {
		children := make([]any, len(el.Children()))
		for i, v := range el.Children() {
			ev, err := e.encodeValue(v)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			children[i] = ev
		}
		doc["children"] = children
	}
	return doc, nil
}

func (e *encoder) encodeValue(v cty.Value) (any, error) {
	if child, ok := element.FromValue(v); ok {
		return e.encodeElement(child)
	}
	if ref, ok := element.DeferredFromValue(v); ok {
		id, ok := e.ids[ref.Element.ID()]
		if !ok {
			return nil, fmt.Errorf("deferred reference targets an element outside the tree")
		}
		out := map[string]any{"$ref": id}
		if len(ref.Path) > 0 {
			path := make([]any, len(ref.Path))
			for i, step := range ref.Path {
				switch s := step.(type) {
				case cty.GetAttrStep:
					path[i] = s.Name
				case cty.IndexStep:
					idx, _ := s.Key.AsBigFloat().Int64()
					path[i] = idx
				}
			}
			out["path"] = path
		}
		return out, nil
	}
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}

	// Collections may hold capsules below the surface; recurse for them
	// and let cty's JSON codec handle everything concrete.
	ty := v.Type()
	switch {
	case ty.IsTupleType(), ty.IsListType(), ty.IsSetType():
		var out []any
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			enc, err := e.encodeValue(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, enc)
		}
		return out, nil
	case ty.IsObjectType(), ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			enc, err := e.encodeValue(ev)
			if err != nil {
				return nil, err
			}
			out[kv.AsString()] = enc
		}
		return out, nil
	}

	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
