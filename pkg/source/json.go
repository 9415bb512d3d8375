package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	kjson "github.com/knadh/koanf/parsers/json"
)

// JSON implements a koanf.Parser for JSON documents. Numbers are decoded as
// json.Number so integers keep every digit.
type JSON struct {
	*kjson.JSON
}

// JSONParser returns a JSON parser.
func JSONParser() *JSON {
	return &JSON{JSON: kjson.Parser()}
}

// Unmarshal parses JSON bytes into a nested map.
func (p *JSON) Unmarshal(b []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out map[string]interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}

	return out, nil
}
