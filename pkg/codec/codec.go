package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string
}

// ForPath picks a codec from the file extension of path.
func ForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSONStrict, nil
	default:
		return nil, fmt.Errorf("codec: unsupported file extension %q (toml|yaml|yml|json)", filepath.Ext(path))
	}
}
