package oink

import "gopkg.in/yaml.v2"

// CompilerOptions controls ambient, non-semantic behavior of a Compile
// call. Nothing here changes the language the pipeline accepts or the
// IR it emits for a given program — it only tunes observability.
type CompilerOptions struct {
	// TraceLevel, when set, is applied to every stage logger at the start
	// of the call (e.g. "TRACE", "DEBUG", "INFO"); the level stays set
	// after the call returns. See logging.go and github.com/juju/loggo's
	// level names.
	TraceLevel string `yaml:"trace_level"`
}

// DefaultOptions returns the zero-value options: no tracing.
func DefaultOptions() *CompilerOptions {
	return &CompilerOptions{}
}

// LoadOptions parses CompilerOptions from YAML. The CLI front door that
// would read this from a file on disk is outside this module's scope;
// callers pass the bytes however they obtained them.
func LoadOptions(data []byte) (*CompilerOptions, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, err
	}
	return opts, nil
}
