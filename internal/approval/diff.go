package approval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/nhle/freightdesk/internal/model"
)

// FlattenChanges turns an edit diff into the flat update body: the proposed
// value of every changed field. Only strings, numbers and booleans survive;
// nulls, nested objects and arrays are dropped.
func FlattenChanges(changes map[string]model.FieldChange) map[string]any {
	fields := make(map[string]any, len(changes))
	for name, c := range changes {
		if !isPrimitive(c.New) {
			continue
		}
		if reflect.DeepEqual(c.New, c.Old) {
			continue
		}
		fields[name] = c.New
	}
	return fields
}

func isPrimitive(v any) bool {
	switch v.(type) {
	case string, bool, json.Number,
		float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// BuildChanges compares two versions of a record and returns the edit diff
// payload for the fields that differ, keyed by their JSON names.
func BuildChanges(before, after any) (json.RawMessage, error) {
	oldFields, err := toFields(before)
	if err != nil {
		return nil, fmt.Errorf("encoding current record: %w", err)
	}
	newFields, err := toFields(after)
	if err != nil {
		return nil, fmt.Errorf("encoding proposed record: %w", err)
	}

	changes := make(map[string]model.FieldChange)
	for name, nv := range newFields {
		ov := oldFields[name]
		if reflect.DeepEqual(nv, ov) {
			continue
		}
		changes[name] = model.FieldChange{New: nv, Old: ov}
	}

	data, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("encoding changes: %w", err)
	}
	return data, nil
}

func toFields(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
