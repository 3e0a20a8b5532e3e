// Package gitops implements a structural mutation of a cluster values
// file: walk an arbitrarily-nested YAML document, find every mapping with
// an "image: {repository, tag}" child, and bump the tag wherever the
// repository matches a target.
//
// The values file has no fixed schema, so this operates on
// gopkg.in/yaml.v3's generic *yaml.Node tree rather than unmarshalling into
// a typed struct, so it works on an arbitrary document rather than a fixed
// shape.
package gitops

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImageUpdate names a target repository and the tag it should carry.
type ImageUpdate struct {
	Repository string
	Tag        string
}

// UpdateAppVersion loads the YAML document at path, applies updates to every
// matching image block, and rewrites the file in place iff anything
// changed. It is idempotent: calling it again with the same updates against
// the file it just wrote returns changed=false and performs no write, which
// is what lets it run under at-least-once activity execution.
func UpdateAppVersion(path string, updates []ImageUpdate) (changed bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read values file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("parse values file: %w", err)
	}

	changed = walk(&doc, updates)
	if !changed {
		return false, nil
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return false, fmt.Errorf("marshal updated values file: %w", err)
	}

	info, err := os.Stat(path)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return false, fmt.Errorf("write values file: %w", err)
	}

	return true, nil
}

// walk recurses depth-first over the document. At every mapping node, if it
// has a child key "image" whose value is itself a mapping containing both a
// string "repository" and a string "tag", each update whose Repository
// matches the current repository and whose Tag differs overwrites the tag.
// Recursion continues into every other child, including inside matched
// image blocks, and into sequences elementwise.
func walk(node *yaml.Node, updates []ImageUpdate) bool {
	if node == nil {
		return false
	}

	changed := false

	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if walk(child, updates) {
				changed = true
			}
		}
	case yaml.MappingNode:
		if applyImageBlock(node, updates) {
			changed = true
		}
		// Mapping content is a flat [key1, val1, key2, val2, ...] list;
		// recurse into every value (and, harmlessly, every key, which
		// are always scalars and never match).
		for _, child := range node.Content {
			if walk(child, updates) {
				changed = true
			}
		}
	case yaml.SequenceNode:
		for _, child := range node.Content {
			if walk(child, updates) {
				changed = true
			}
		}
	}

	return changed
}

// applyImageBlock checks whether node (a mapping) has an "image" child that
// is itself a {repository, tag} mapping, and if so applies matching updates
// to it. It does not recurse — the caller's walk loop handles that, so that
// the image block's own "image" value (a rare but legal nesting) is still
// visited.
func applyImageBlock(node *yaml.Node, updates []ImageUpdate) bool {
	key, value := findMapEntry(node, "image")
	if key == nil || value == nil || value.Kind != yaml.MappingNode {
		return false
	}

	_, repoNode := findMapEntry(value, "repository")
	tagKey, tagNode := findMapEntry(value, "tag")
	if repoNode == nil || tagNode == nil {
		return false
	}
	if repoNode.Kind != yaml.ScalarNode || tagNode.Kind != yaml.ScalarNode {
		return false
	}

	changed := false
	for _, u := range updates {
		if repoNode.Value != u.Repository {
			continue
		}
		if tagNode.Value == u.Tag {
			continue
		}
		tagNode.Value = u.Tag
		tagNode.Tag = "!!str"
		_ = tagKey
		changed = true
	}

	return changed
}

// findMapEntry returns the (key, value) node pair for key in a mapping
// node's flat content list, or (nil, nil) if absent.
func findMapEntry(mapping *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k := mapping.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return k, mapping.Content[i+1]
		}
	}
	return nil, nil
}
