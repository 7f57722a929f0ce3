package oink

import "github.com/juju/loggo"

// One named logger per stage, mirroring how a multi-stage pipeline in this
// ecosystem is usually instrumented: a logger per component rather than
// one firehose for the whole module. All four are silent by default
// (loggo's root logger starts at WARNING); a Compile call with a
// non-empty CompilerOptions.TraceLevel sets their level, and it is not
// reset when the call returns.
var (
	lexerLog    = loggo.GetLogger("oink.lexer")
	parserLog   = loggo.GetLogger("oink.parser")
	semanticLog = loggo.GetLogger("oink.semantic")
	codegenLog  = loggo.GetLogger("oink.codegen")
)

// configureLogging applies the level named by opts.TraceLevel (if any) to
// every stage logger. An empty or unrecognized level leaves the loggers at
// their current (default: silent) level.
func configureLogging(opts *CompilerOptions) {
	if opts == nil || opts.TraceLevel == "" {
		return
	}
	level, ok := loggo.ParseLevel(opts.TraceLevel)
	if !ok {
		return
	}
	lexerLog.SetLogLevel(level)
	parserLog.SetLogLevel(level)
	semanticLog.SetLogLevel(level)
	codegenLog.SetLogLevel(level)
}
