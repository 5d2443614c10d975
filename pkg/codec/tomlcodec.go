package codec

import (
	"bytes"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

type tomlStrict struct{}

// TOML rejects keys that do not map to a field.
var TOML Codec = tomlStrict{}

func (tomlStrict) Marshal(v any) ([]byte, error) { return toml.Marshal(v) }

func (tomlStrict) Unmarshal(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("toml decode: %w", err)
	}
	return nil
}

func (tomlStrict) ContentType() string { return "application/toml" }
