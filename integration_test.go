package oink

import (
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/kr/pretty"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.

func TestIntegration(t *testing.T) { TestingT(t) }

type PipelineSuite struct{}

var _ = Suite(&PipelineSuite{})

// compileErr runs the whole pipeline and unwraps the diagnostic back to
// the *CompilationError every stage contractually surfaces.
func compileErr(c *C, src string) *CompilationError {
	_, err := Compile(src, nil)
	c.Assert(err, NotNil)
	cerr, ok := errors.Cause(err).(*CompilationError)
	c.Assert(ok, Equals, true, Commentf("got %T: %v", errors.Cause(err), err))
	return cerr
}

func (s *PipelineSuite) TestBasicArithmeticAndReturn(c *C) {
	ir, err := Compile("# 😀 🐷 🐖x🐖 @ 2 ❤️ 3 #\n# ... 🐖x🐖 ... #", nil)
	c.Assert(err, IsNil)
	for _, want := range []string{
		"define i32 @main()",
		"add i16 2, 3",
		"call void @printResult(i32 ",
		"ret i32 ",
	} {
		c.Check(strings.Contains(ir, want), Equals, true, Commentf("IR missing %q:\n%s", want, ir))
	}
}

func (s *PipelineSuite) TestMoodLineInversion(c *C) {
	ir, err := Compile("#~ 😀 🐷 🐖x🐖 @ 10 ❤️ 5 ~#\n# ... 🐖x🐖 ... #", nil)
	c.Assert(err, IsNil)
	c.Check(strings.Contains(ir, "sub i16 10, 5"), Equals, true, Commentf("IR:\n%s", ir))
	c.Check(strings.Contains(ir, "add i16 10, 5"), Equals, false, Commentf("IR:\n%s", ir))
}

// Inverting an operator on a mood line must be indistinguishable from
// writing the inverted operator on a plain line: same tokens aside, same
// AST, and therefore byte-identical IR.
func (s *PipelineSuite) TestMoodInversionIsInvolution(c *C) {
	mood := MustCompile("#~ 😀 🐷 🐖x🐖 @ 10 ❤️ 5 ~#\n# ... 🐖x🐖 ... #", nil)
	plain := MustCompile("# 😀 🐷 🐖x🐖 @ 10 💔 5 #\n# ... 🐖x🐖 ... #", nil)
	c.Assert(mood, Equals, plain, Commentf("diff: %v", pretty.Diff(strings.Split(mood, "\n"), strings.Split(plain, "\n"))))
}

func (s *PipelineSuite) TestBranching(c *C) {
	src := "# 😀 🐷 🐖x🐖 @ 7 #\n" +
		"# SAVE 🐖x🐖 > 5 #\n" +
		"# 🐖🐖🐖 #\n" +
		"# 🐖x🐖 @ 100 #\n" +
		"# 🐖🐖🐖 #\n" +
		"# ... 🐖x🐖 ... #"
	ir, err := Compile(src, nil)
	c.Assert(err, IsNil)
	for _, want := range []string{
		"icmp sgt",
		"then_0:",
		"end_0:",
		"%x.1 = add i32 0, 100",
	} {
		c.Check(strings.Contains(ir, want), Equals, true, Commentf("IR missing %q:\n%s", want, ir))
	}
}

func (s *PipelineSuite) TestWhileLoop(c *C) {
	src := "# 😀 🐷 🐖c🐖 @ 0 #\n" +
		"# OINK 🐖c🐖 < 3 #\n" +
		"# 🐖🐖🐖 #\n" +
		"# 🐖c🐖 @ 🐖c🐖 ❤️ 1 #\n" +
		"# 🐖🐖🐖 #\n" +
		"# ... 🐖c🐖 ... #"
	ir, err := Compile(src, nil)
	c.Assert(err, IsNil)
	for _, want := range []string{
		"while_cond_0:",
		"while_body_0:",
		"while_end_0:",
		"icmp slt",
		"br label %while_cond_0",
	} {
		c.Check(strings.Contains(ir, want), Equals, true, Commentf("IR missing %q:\n%s", want, ir))
	}
}

func (s *PipelineSuite) TestImmutableReassignmentRejected(c *C) {
	cerr := compileErr(c, "# 😭 🐷 🐖k🐖 @ 1 #\n# 🐖k🐖 @ 2 #\n# ... 🐖k🐖 ... #")
	c.Check(cerr.Kind, Equals, ImmutableAssignment)
	c.Check(cerr.Line, Equals, 2)
}

func (s *PipelineSuite) TestNonBoolConditionRejected(c *C) {
	src := "# 😀 🐷 🐖x🐖 @ 1 #\n" +
		"# SAVE 🐖x🐖 #\n" +
		"# 🐖🐖🐖 #\n" +
		"# 🐖🐖🐖 #\n" +
		"# ... 🐖x🐖 ... #"
	cerr := compileErr(c, src)
	c.Check(cerr.Kind, Equals, TypeMismatch)
	c.Check(strings.Contains(cerr.Error(), "bool"), Equals, true, Commentf("%v", cerr))
}

func (s *PipelineSuite) TestUnknownGlyphRejected(c *C) {
	cerr := compileErr(c, "# 😀 🐷 🐖x🐖 @ 10 $ #\n")
	c.Check(cerr.Kind, Equals, UnexpectedCharacter)
	c.Check(cerr.Line, Equals, 1)
	c.Check(cerr.Lexeme, Equals, "$")
}

// Every successful compilation must leave @main with a ret on the path
// that falls off the end of the emitted body.
func (s *PipelineSuite) TestMainAlwaysReturns(c *C) {
	sources := []string{
		"# 😀 🐷 🐖x🐖 @ 1 #\n# ... 🐖x🐖 ... #",
		"# 😀 wow 🐖b🐖 @ LOVE #\n# ... 🐖b🐖 ... #",
		"# 😀 🐗 🐖big🐖 @ 3000000000 #\n# ... 🐖big🐖 ... #",
	}
	for _, src := range sources {
		ir, err := Compile(src, nil)
		c.Assert(err, IsNil, Commentf("source: %q", src))
		body := ir[strings.Index(ir, "@main"):]
		lines := strings.Split(strings.TrimSuffix(strings.TrimSpace(body), "}"), "\n")
		last := strings.TrimSpace(lines[len(lines)-2])
		c.Check(strings.HasPrefix(last, "ret i32 "), Equals, true,
			Commentf("body does not end in ret:\n%s", pretty.Sprint(lines)))
	}
}
