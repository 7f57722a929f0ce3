package oink

import (
	"fmt"
	"strconv"
	"strings"
)

// preludeIR is the fixed prelude emitted before @main: a printf
// declaration and a @printResult helper that prints
// "Program exit with result %d\n" via the program's exit value.
const preludeIR = `declare i32 @printf(i8*, ...)

@.fmt = private unnamed_addr constant [29 x i8] c"Program exit with result %d\0A\00"

define void @printResult(i32 %val) {
entry:
  %fmt_ptr = getelementptr inbounds [29 x i8], [29 x i8]* @.fmt, i32 0, i32 0
  call i32 (i8*, ...) @printf(i8* %fmt_ptr, i32 %val)
  ret void
}
`

// codegen holds the running state of IR emission: SSA version and
// declared-type tables keyed by source variable name, an append-only
// list of emitted lines, and the temporary/label counters.
//
// Known limitation: this generator does not insert phi nodes at branch merge points, nor does
// it fall back to alloca/load/store for mutable variables. A variable
// mutated inside a branch and read after the branch merges will read
// whichever SSA version was last minted along the path actually taken at
// generation time, not a value reconciled across both paths — which is
// not valid LLVM-IR for that case. Callers must restrict such variables'
// post-merge reads to scenarios where the last mutation happens on every
// reachable path (e.g. a trailing direct assignment).
type codegen struct {
	lines []string

	versions map[string]int
	types    map[string]DataType

	tempCounter  int
	labelCounter int
}

// Generate walks prog and returns a complete textual LLVM-IR module
// defining i32 @main().
func Generate(prog *Program) (string, error) {
	codegenLog.Tracef("generating IR for %d top-level statements", len(prog.Statements))
	g := &codegen{versions: make(map[string]int), types: make(map[string]DataType)}

	for _, stmt := range prog.Statements {
		if err := g.genStatement(stmt); err != nil {
			return "", err
		}
	}
	if err := g.genReturn(prog.Return); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(preludeIR)
	sb.WriteString("\ndefine i32 @main() {\nentry:\n")
	for _, line := range g.lines {
		if strings.HasSuffix(line, ":") {
			sb.WriteString(line)
		} else {
			sb.WriteString("  ")
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	codegenLog.Tracef("generated %d IR lines", len(g.lines))
	return sb.String(), nil
}

func (g *codegen) emit(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	codegenLog.Tracef("emit %s", line)
	g.lines = append(g.lines, line)
}

// currentReg returns the SSA register currently holding name's value:
// the base register %name if it has never been reassigned, else
// %name.N for its current version N.
func (g *codegen) currentReg(name string) string {
	if v := g.versions[name]; v != 0 {
		return fmt.Sprintf("%%%s.%d", name, v)
	}
	return "%" + name
}

// mintReg increments name's version counter and returns the new register.
func (g *codegen) mintReg(name string) string {
	g.versions[name]++
	return g.currentReg(name)
}

func (g *codegen) newTemp() string {
	t := fmt.Sprintf("%%_temp_%d", g.tempCounter)
	g.tempCounter++
	return t
}

// newLabelN mints the next monotonic label index; a single If or While
// statement uses one index across all of its then/elif/else/end (or
// while_cond/while_body/while_end) labels.
func (g *codegen) newLabelN() int {
	n := g.labelCounter
	g.labelCounter++
	return n
}

func (g *codegen) genStatement(node Node) error {
	switch n := node.(type) {
	case *Declaration:
		return g.genDeclaration(n)
	case *Assignment:
		return g.genAssignment(n)
	case *If:
		return g.genIf(n)
	case *While:
		return g.genWhile(n)
	}
	return nil
}

func (g *codegen) genDeclaration(d *Declaration) error {
	val, valType, err := g.emitExpr(d.Init)
	if err != nil {
		return err
	}
	// An integer immediate is valid at any integer width, so only a
	// register value is sign-extended to the declared type.
	if strings.HasPrefix(val, "%") {
		val = g.promote(val, valType, d.DeclaredType)
	}
	g.types[d.Name] = d.DeclaredType
	// The first declaration of a name uses its base register; a later
	// declaration of the same name (in another scope) mints a new version.
	reg := "%" + d.Name
	if _, seen := g.versions[d.Name]; seen {
		reg = g.mintReg(d.Name)
	} else {
		g.versions[d.Name] = 0
	}
	g.emit("%s = add %s 0, %s", reg, d.DeclaredType.LLVM(), val)
	return nil
}

func (g *codegen) genAssignment(a *Assignment) error {
	val, valType, err := g.emitExpr(a.Expr)
	if err != nil {
		return err
	}
	declaredType := g.types[a.Name]
	if strings.HasPrefix(val, "%") {
		val = g.promote(val, valType, declaredType)
	}
	reg := g.mintReg(a.Name)
	g.emit("%s = add %s 0, %s", reg, declaredType.LLVM(), val)
	return nil
}

// genBlock emits blk's statements and, if present, its trailing return.
// It reports whether the block terminated with a ret (in which case the
// caller must not also emit a closing branch to its merge label).
func (g *codegen) genBlock(blk *CodeBlock) (bool, error) {
	for _, stmt := range blk.Statements {
		if err := g.genStatement(stmt); err != nil {
			return false, err
		}
	}
	if blk.Return != nil {
		if err := g.genReturn(blk.Return); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (g *codegen) genIf(n *If) error {
	id := g.newLabelN()
	thenLabel := fmt.Sprintf("then_%d", id)
	endLabel := fmt.Sprintf("end_%d", id)

	cond, _, err := g.emitExpr(n.Condition)
	if err != nil {
		return err
	}

	var firstNext string
	switch {
	case len(n.Elifs) > 0:
		firstNext = fmt.Sprintf("elif_%d_0", id)
	case n.Else != nil:
		firstNext = fmt.Sprintf("else_%d", id)
	default:
		firstNext = endLabel
	}
	g.emit("br i1 %s, label %%%s, label %%%s", cond, thenLabel, firstNext)

	g.emit("%s:", thenLabel)
	terminated, err := g.genBlock(n.Then)
	if err != nil {
		return err
	}
	if !terminated {
		g.emit("br label %%%s", endLabel)
	}

	for i, elif := range n.Elifs {
		elifLabel := fmt.Sprintf("elif_%d_%d", id, i)
		bodyLabel := fmt.Sprintf("elif_%d_%d_body", id, i)
		var next string
		switch {
		case i+1 < len(n.Elifs):
			next = fmt.Sprintf("elif_%d_%d", id, i+1)
		case n.Else != nil:
			next = fmt.Sprintf("else_%d", id)
		default:
			next = endLabel
		}

		g.emit("%s:", elifLabel)
		elifCond, _, err := g.emitExpr(elif.Condition)
		if err != nil {
			return err
		}
		g.emit("br i1 %s, label %%%s, label %%%s", elifCond, bodyLabel, next)

		g.emit("%s:", bodyLabel)
		terminated, err := g.genBlock(elif.Block)
		if err != nil {
			return err
		}
		if !terminated {
			g.emit("br label %%%s", endLabel)
		}
	}

	if n.Else != nil {
		elseLabel := fmt.Sprintf("else_%d", id)
		g.emit("%s:", elseLabel)
		terminated, err := g.genBlock(n.Else)
		if err != nil {
			return err
		}
		if !terminated {
			g.emit("br label %%%s", endLabel)
		}
	}

	g.emit("%s:", endLabel)
	return nil
}

func (g *codegen) genWhile(n *While) error {
	id := g.newLabelN()
	condLabel := fmt.Sprintf("while_cond_%d", id)
	bodyLabel := fmt.Sprintf("while_body_%d", id)
	endLabel := fmt.Sprintf("while_end_%d", id)

	g.emit("br label %%%s", condLabel)

	g.emit("%s:", condLabel)
	cond, _, err := g.emitExpr(n.Condition)
	if err != nil {
		return err
	}
	g.emit("br i1 %s, label %%%s, label %%%s", cond, bodyLabel, endLabel)

	g.emit("%s:", bodyLabel)
	terminated, err := g.genBlock(n.Body)
	if err != nil {
		return err
	}
	if !terminated {
		g.emit("br label %%%s", condLabel)
	}

	g.emit("%s:", endLabel)
	return nil
}

func (g *codegen) genReturn(r *Return) error {
	val, typ, err := g.emitExpr(r.Expr)
	if err != nil {
		return err
	}
	v32 := g.castToI32(val, typ)
	g.emit("call void @printResult(i32 %s)", v32)
	g.emit("ret i32 %s", v32)
	return nil
}

// castToI32 converts val (of type typ) to i32 per the program's single
// exit-value convention: BOOL widens with zext, I16 widens with sext, I32
// passes through unchanged, I64 narrows with trunc.
func (g *codegen) castToI32(val string, typ DataType) string {
	switch typ {
	case BOOL:
		t := g.newTemp()
		g.emit("%s = zext i1 %s to i32", t, val)
		return t
	case I16:
		t := g.newTemp()
		g.emit("%s = sext i16 %s to i32", t, val)
		return t
	case I64:
		t := g.newTemp()
		g.emit("%s = trunc i64 %s to i32", t, val)
		return t
	default:
		return val
	}
}

// emitExpr recursively emits the IR for e and returns the SSA value (a
// register or an immediate literal) holding its result, along with its
// DataType.
func (g *codegen) emitExpr(e Expr) (string, DataType, error) {
	switch n := e.(type) {
	case *NumberLiteral:
		val, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			return "", 0, newError(StructuralError, n.Line(), 0, n.Text, "%q is not a valid integer literal", n.Text)
		}
		return n.Text, classifyMagnitude(val), nil

	case *BooleanLiteral:
		if n.Text == TrueLiteral {
			return "1", BOOL, nil
		}
		return "0", BOOL, nil

	case *Identifier:
		return g.currentReg(n.Name), g.types[n.Name], nil

	case *UnaryOp:
		operand, _, err := g.emitExpr(n.Operand)
		if err != nil {
			return "", 0, err
		}
		t := g.newTemp()
		g.emit("%s = xor i1 %s, 1", t, operand)
		return t, BOOL, nil

	case *BinaryOp:
		return g.emitBinaryOp(n)
	}
	return "", 0, newError(StructuralError, e.Line(), 0, "", "unrecognized expression")
}

// promote sign-extends val from from to to when to is wider, and returns
// val unchanged when the types already match.
func (g *codegen) promote(val string, from, to DataType) string {
	if from == to {
		return val
	}
	t := g.newTemp()
	g.emit("%s = sext %s %s to %s", t, from.LLVM(), val, to.LLVM())
	return t
}

func (g *codegen) emitBinaryOp(b *BinaryOp) (string, DataType, error) {
	leftVal, leftType, err := g.emitExpr(b.Left)
	if err != nil {
		return "", 0, err
	}
	rightVal, rightType, err := g.emitExpr(b.Right)
	if err != nil {
		return "", 0, err
	}

	switch {
	case b.Op.IsArithmetic():
		target := *b.ResultType
		leftVal = g.promote(leftVal, leftType, target)
		rightVal = g.promote(rightVal, rightType, target)
		t := g.newTemp()
		g.emit("%s = %s %s %s, %s", t, b.Op.LLVM(), target.LLVM(), leftVal, rightVal)
		return t, target, nil

	case b.Op.IsComparison():
		operandType := BOOL
		if leftType != BOOL || rightType != BOOL {
			operandType = wider(leftType, rightType)
		}
		leftVal = g.promote(leftVal, leftType, operandType)
		rightVal = g.promote(rightVal, rightType, operandType)
		t := g.newTemp()
		g.emit("%s = %s %s %s, %s", t, b.Op.LLVM(), operandType.LLVM(), leftVal, rightVal)
		return t, BOOL, nil

	default:
		t := g.newTemp()
		g.emit("%s = %s i1 %s, %s", t, b.Op.LLVM(), leftVal, rightVal)
		return t, BOOL, nil
	}
}
