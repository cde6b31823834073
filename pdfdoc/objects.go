package pdfdoc

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// resolve follows an indirect reference.
func (d *Document) resolve(o types.Object) (types.Object, error) {
	if ref, ok := o.(types.IndirectRef); ok {
		return d.ctx.Dereference(ref)
	}
	return o, nil
}

func (d *Document) entry(dict types.Dict, key string) (types.Object, bool) {
	o, found := dict.Find(key)
	if !found || o == nil {
		return nil, false
	}
	o, err := d.resolve(o)
	if err != nil || o == nil {
		return nil, false
	}
	return o, true
}

func (d *Document) dictEntry(dict types.Dict, key string) (types.Dict, bool) {
	o, ok := d.entry(dict, key)
	if !ok {
		return nil, false
	}
	v, ok := o.(types.Dict)
	return v, ok
}

func (d *Document) streamEntry(dict types.Dict, key string) (types.StreamDict, bool) {
	o, ok := d.entry(dict, key)
	if !ok {
		return types.StreamDict{}, false
	}
	v, ok := o.(types.StreamDict)
	return v, ok
}

func (d *Document) intEntry(dict types.Dict, key string) (int, bool) {
	o, ok := d.entry(dict, key)
	if !ok {
		return 0, false
	}
	return intOf(o)
}

func (d *Document) nameEntry(dict types.Dict, key string) (string, bool) {
	o, ok := d.entry(dict, key)
	if !ok {
		return "", false
	}
	return nameOf(o)
}

func intOf(o types.Object) (int, bool) {
	switch v := o.(type) {
	case types.Integer:
		return int(v), true
	case types.Float:
		return int(v), true
	}
	return 0, false
}

func nameOf(o types.Object) (string, bool) {
	n, ok := o.(types.Name)
	return string(n), ok
}

// boolOf reads a Boolean object.
func boolOf(o types.Object) (bool, bool) {
	b, ok := o.(types.Boolean)
	return bool(b), ok
}
