package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlStrict struct{}

// YAML rejects keys that do not map to a field.
var YAML Codec = yamlStrict{}

func (yamlStrict) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

func (yamlStrict) Unmarshal(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("yaml decode: %w", err)
	}
	return nil
}

func (yamlStrict) ContentType() string { return "application/yaml" }
