package event

import (
	"maps"
	"reflect"
	"slices"
	"strings"
)

// PatchOp is an RFC 6902 operation name.
type PatchOp string

// Supported patch operations.
const (
	PatchAdd     PatchOp = "add"
	PatchRemove  PatchOp = "remove"
	PatchReplace PatchOp = "replace"
)

// JSONPatch is a single RFC 6902 operation.
type JSONPatch struct {
	Op    PatchOp `json:"op"`
	Path  string  `json:"path"`
	Value any     `json:"value,omitempty"`
}

// Add returns an add operation.
func Add(path string, value any) JSONPatch {
	return JSONPatch{Op: PatchAdd, Path: path, Value: value}
}

// Replace returns a replace operation.
func Replace(path string, value any) JSONPatch {
	return JSONPatch{Op: PatchReplace, Path: path, Value: value}
}

// Remove returns a remove operation.
func Remove(path string) JSONPatch {
	return JSONPatch{Op: PatchRemove, Path: path}
}

// Diff returns the patches that turn prev into next.
//
// Both values are expected to be JSON-shaped, as produced by decoding JSON
// into an any. Objects are compared key by key in sorted order; any other
// value that differs, arrays included, is replaced wholesale.
func Diff(prev, next any) []JSONPatch {
	return diff("", prev, next, nil)
}

func diff(path string, prev, next any, patches []JSONPatch) []JSONPatch {
	po, pok := prev.(map[string]any)
	no, nok := next.(map[string]any)
	if !pok || !nok {
		if !reflect.DeepEqual(prev, next) {
			patches = append(patches, Replace(path, next))
		}
		return patches
	}

	for _, k := range slices.Sorted(maps.Keys(po)) {
		if _, ok := no[k]; !ok {
			patches = append(patches, Remove(path+"/"+escapePointer(k)))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(no)) {
		child := path + "/" + escapePointer(k)
		pv, ok := po[k]
		if !ok {
			patches = append(patches, Add(child, no[k]))
			continue
		}
		patches = diff(child, pv, no[k], patches)
	}
	return patches
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// escapePointer escapes a key for use as an RFC 6901 reference token.
func escapePointer(key string) string {
	return pointerEscaper.Replace(key)
}
