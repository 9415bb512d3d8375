package source

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/ini.v1"
)

// INI implements a koanf.Parser for INI documents. Keys of the default
// section sit at the root, every other section becomes a nested table of
// string values.
type INI struct{}

// IniParser returns an INI parser.
func IniParser() *INI {
	return &INI{}
}

// Unmarshal parses INI bytes into a nested map.
func (p *INI) Unmarshal(b []byte) (map[string]interface{}, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, b)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{})
	for _, section := range f.Sections() {
		target := out
		if section.Name() != ini.DefaultSection {
			target = make(map[string]interface{}, len(section.Keys()))
			out[section.Name()] = target
		}

		for _, key := range section.Keys() {
			target[key.Name()] = key.String()
		}
	}

	return out, nil
}

// Marshal renders a map of scalars and single-level tables as INI.
func (p *INI) Marshal(o map[string]interface{}) ([]byte, error) {
	f := ini.Empty()

	for _, name := range slices.Sorted(maps.Keys(o)) {
		switch v := o[name].(type) {
		case map[string]interface{}:
			section := f.Section(name)
			for _, key := range slices.Sorted(maps.Keys(v)) {
				if _, err := section.NewKey(key, fmt.Sprint(v[key])); err != nil {
					return nil, err
				}
			}
		default:
			if _, err := f.Section(ini.DefaultSection).NewKey(name, fmt.Sprint(v)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
