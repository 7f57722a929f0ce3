package oink

import "testing"

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions([]byte("trace_level: TRACE\n"))
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.TraceLevel != "TRACE" {
		t.Fatalf("got trace level %q, want TRACE", opts.TraceLevel)
	}
}

func TestLoadOptions_Empty(t *testing.T) {
	opts, err := LoadOptions(nil)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.TraceLevel != "" {
		t.Fatalf("empty input must yield default options, got %+v", opts)
	}
}

func TestLoadOptions_RejectsMalformedYAML(t *testing.T) {
	if _, err := LoadOptions([]byte("trace_level: [unclosed")); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
