package source

import (
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"gopkg.in/yaml.v3"
)

// YAML implements a koanf.Parser for YAML documents. Timestamps are kept as
// the text written in the document.
type YAML struct {
	*kyaml.YAML
}

// YAMLParser returns a YAML parser.
func YAMLParser() *YAML {
	return &YAML{YAML: kyaml.Parser()}
}

// Unmarshal parses YAML bytes into a nested map.
func (p *YAML) Unmarshal(b []byte) (map[string]interface{}, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	out := make(map[string]interface{})
	if len(doc.Content) == 0 {
		return out, nil
	}

	keepTimestampText(&doc)

	if err := doc.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// keepTimestampText retags timestamp scalars as strings. Alias nodes are not
// followed; their anchors are visited where they are defined.
func keepTimestampText(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!timestamp" {
		n.Tag = "!!str"
	}
	for _, child := range n.Content {
		keepTimestampText(child)
	}
}
