package oink

import "github.com/juju/errors"

// Compile runs the full pipeline — lexer, parser, semantic analyzer,
// code generator — over source and returns the textual LLVM-IR module
// for its single @main function, or the first diagnostic encountered.
//
// opts may be nil, in which case DefaultOptions() is used. Data flow is
// strictly one-way: each stage consumes its predecessor's output to
// completion before the next stage runs.
func Compile(source string, opts *CompilerOptions) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	configureLogging(opts)

	tokens, err := lex(source)
	if err != nil {
		return "", errors.Trace(err)
	}

	prog, err := Parse(tokens)
	if err != nil {
		return "", errors.Trace(err)
	}

	if err := Analyze(prog); err != nil {
		return "", errors.Trace(err)
	}

	ir, err := Generate(prog)
	if err != nil {
		return "", errors.Trace(err)
	}

	return ir, nil
}

// MustCompile is a thin convenience wrapper for call sites (tests, small
// tools) that would rather panic than thread an error through.
func MustCompile(source string, opts *CompilerOptions) string {
	ir, err := Compile(source, opts)
	if err != nil {
		panic(err)
	}
	return ir
}
