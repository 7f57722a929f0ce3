// Package oink implements the front end and LLVM-IR emitter of a small,
// statically typed toy language whose surface syntax leans on emoji
// glyphs and theatrical keywords, and whose signature feature is the
// mood line: a line-level modifier that inverts every operator and
// literal it contains on that line.
//
// Current caveats
//   - Concurrency: a Compile call is synchronous. The only shared state
//     it touches is the package's stage loggers, whose level it sets
//     when the options carry a non-empty TraceLevel.
//   - Code generation does not insert phi nodes at branch merges; see
//     codegen.go's doc comment for the precise limitation.
//
// A tiny example:
//
//	ir, err := oink.Compile("# 😀 🐷 🐖x🐖 @ 2 ❤️ 3 #\n# ... 🐖x🐖 ... #\n", nil)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(ir) // a textual LLVM-IR module defining i32 @main()
package oink
