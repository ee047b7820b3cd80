package vault

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// splitDocument separates a note into its frontmatter block (including
// both delimiter lines, empty when the note has none) and the body.
func splitDocument(content string) (front, body string) {
	if !strings.HasPrefix(content, frontmatterDelim+"\n") &&
		!strings.HasPrefix(content, frontmatterDelim+"\r\n") {
		return "", content
	}

	rest := content[len(frontmatterDelim):]
	nl := strings.IndexByte(rest, '\n')
	rest = rest[nl+1:]

	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return "", content
	}

	// The closing delimiter must be a whole line.
	after := rest[end+1+len(frontmatterDelim):]
	if after != "" && after[0] != '\n' && after[0] != '\r' {
		return "", content
	}

	if i := strings.IndexByte(after, '\n'); i >= 0 {
		after = after[i+1:]
	} else {
		after = ""
	}

	return content[:len(content)-len(after)], after
}

// parseFrontmatterMap decodes the note's frontmatter into a plain map,
// or nil when the note has no frontmatter block.
func parseFrontmatterMap(content string) (map[string]any, error) {
	front, _ := splitDocument(content)
	if front == "" {
		return nil, nil
	}

	block := strings.TrimPrefix(front, frontmatterDelim)
	block = strings.TrimSuffix(strings.TrimSpace(block), frontmatterDelim)

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

// nodeFrontmatter is an editable frontmatter view backed by a yaml
// mapping node, so untouched keys keep their order and style.
type nodeFrontmatter struct {
	mapping *yaml.Node
}

// parseFrontmatterNode parses a frontmatter block (delimiters included)
// into an editable view. An empty block yields an empty mapping.
func parseFrontmatterNode(front string) (*nodeFrontmatter, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	if front != "" {
		block := strings.TrimPrefix(front, frontmatterDelim)
		block = strings.TrimSuffix(strings.TrimSpace(block), frontmatterDelim)

		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
			return nil, err
		}

		if len(doc.Content) > 0 {
			root := doc.Content[0]
			if root.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("frontmatter is not a mapping")
			}
			mapping = root
		}
	}

	return &nodeFrontmatter{mapping: mapping}, nil
}

func (f *nodeFrontmatter) find(key string) int {
	for i := 0; i+1 < len(f.mapping.Content); i += 2 {
		if f.mapping.Content[i].Value == key {
			return i
		}
	}

	return -1
}

func (f *nodeFrontmatter) Get(key string) (any, bool) {
	i := f.find(key)
	if i < 0 {
		return nil, false
	}

	var value any
	if err := f.mapping.Content[i+1].Decode(&value); err != nil {
		return nil, false
	}

	return value, true
}

func (f *nodeFrontmatter) Set(key string, value any) {
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return
	}

	if i := f.find(key); i >= 0 {
		f.mapping.Content[i+1] = node
		return
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	f.mapping.Content = append(f.mapping.Content, keyNode, node)
}

func (f *nodeFrontmatter) Delete(key string) {
	if i := f.find(key); i >= 0 {
		f.mapping.Content = append(f.mapping.Content[:i], f.mapping.Content[i+2:]...)
	}
}

// render serializes the view back to a frontmatter block, delimiters
// included. An empty mapping renders to no block at all.
func (f *nodeFrontmatter) render() (string, error) {
	if len(f.mapping.Content) == 0 {
		return "", nil
	}

	out, err := yaml.Marshal(f.mapping)
	if err != nil {
		return "", err
	}

	return frontmatterDelim + "\n" + string(out) + frontmatterDelim + "\n", nil
}
