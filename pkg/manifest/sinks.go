package manifest

// SinkType enumerates sink backends.
type SinkType string

const (
	SinkTypeDoris SinkType = "doris"
)

// Sink is one load target. Name keys logs, metrics and checkpoints.
type Sink struct {
	Type  SinkType   `toml:"type" yaml:"type"`                       // "doris"
	Name  string     `toml:"name" yaml:"name"`                       // required, unique
	Doris *DorisSink `toml:"doris,omitempty" yaml:"doris,omitempty"` // for type == "doris"
}
