package world

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"sigs.k8s.io/yaml"
)

// FromJSON decodes a world document. Top-level objects become entity tables;
// every other top-level value (the reserved clock keys and the like) is kept
// as-is. Table rows that are not objects are dropped. Document order is
// preserved so that query results iterate in the order the fixture listed
// its entities.
func FromJSON(data []byte) (*World, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("world document must be a JSON object")
	}

	w := New()
	var decodeErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			w.extra[key.String()] = value.Value()
			return true
		}
		table := w.EnsureTable(key.String())
		value.ForEach(func(id, row gjson.Result) bool {
			if !row.IsObject() {
				return true
			}
			var e Entity
			if err := json.Unmarshal([]byte(row.Raw), &e); err != nil {
				decodeErr = errors.Wrapf(err, "failed to decode %s/%s", key.String(), id.String())
				return false
			}
			table.Set(id.String(), e)
			return true
		})
		return decodeErr == nil
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return w, nil
}

// FromYAML decodes a YAML world document by converting it to JSON first.
// YAML mappings do not guarantee order, so table iteration order follows the
// converted document.
func FromYAML(data []byte) (*World, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert YAML document")
	}
	return FromJSON(js)
}

// LoadFile reads a world fixture from a .json, .yaml or .yml file.
func LoadFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read world file")
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return FromYAML(data)
	}
	return FromJSON(data)
}

// MarshalJSON encodes the world back to a single JSON document: reserved
// values first (sorted), then tables in insertion order with rows in
// insertion order.
func (w *World) MarshalJSON() ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	for _, k := range w.ValueKeys() {
		doc, err = sjson.SetBytes(doc, escapePath(k), w.extra[k])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode value %q", k)
		}
	}
	for pair := w.tables.Oldest(); pair != nil; pair = pair.Next() {
		rows := []byte(`{}`)
		var rangeErr error
		pair.Value.Range(func(id string, e Entity) bool {
			raw, merr := json.Marshal(e)
			if merr != nil {
				rangeErr = errors.Wrapf(merr, "failed to encode %s/%s", pair.Key, id)
				return false
			}
			rows, rangeErr = sjson.SetRawBytes(rows, escapePath(id), raw)
			return rangeErr == nil
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		doc, err = sjson.SetRawBytes(doc, escapePath(pair.Key), rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode table %q", pair.Key)
		}
	}
	return doc, nil
}

// escapePath protects keys containing sjson path syntax characters.
func escapePath(key string) string {
	if !strings.ContainsAny(key, ".*?|#@\\") {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
