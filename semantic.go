package oink

import "strconv"

// Analyze runs the single post-parse semantic walk: declaration and
// scoping checks, type checking, and mutability, in one left-to-right
// pass over the AST. It backfills ResultType on every
// arithmetic BinaryOp node before returning successfully, which codegen.go
// relies on.
func Analyze(prog *Program) error {
	semanticLog.Tracef("analyzing program with %d top-level statements", len(prog.Statements))
	ctx := newAnalyzerContext()
	for _, stmt := range prog.Statements {
		if err := analyzeStatement(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := analyzeExpr(ctx, prog.Return.Expr); err != nil {
		return err
	}
	semanticLog.Tracef("analysis succeeded")
	return nil
}

func analyzeStatement(ctx *analyzerContext, node Node) error {
	switch n := node.(type) {
	case *Declaration:
		return analyzeDeclaration(ctx, n)
	case *Assignment:
		return analyzeAssignment(ctx, n)
	case *If:
		return analyzeIf(ctx, n)
	case *While:
		return analyzeWhile(ctx, n)
	}
	return nil
}

// analyzeDeclaration rejects redeclaring a name live in any enclosing
// scope, type-checks the initializer with currentlyInitializing set to
// the declared name (so a bare reference to it inside the initializer is
// caught as self-assignment), and requires the initializer's type be
// assignment-compatible with the declared type.
func analyzeDeclaration(ctx *analyzerContext, d *Declaration) error {
	if _, live := ctx.isLive(d.Name); live {
		return newError(Redeclaration, d.Line(), 0, d.Name, "%q is already declared", d.Name)
	}

	ctx.currentlyInitializing = d.Name
	initType, err := analyzeExpr(ctx, d.Init)
	ctx.currentlyInitializing = ""
	if err != nil {
		return err
	}
	if !isAssignmentCompatible(initType, d.DeclaredType) {
		return newError(TypeMismatch, d.Line(), 0, d.Name,
			"cannot initialize %s %q with a %s value", d.DeclaredType, d.Name, initType)
	}

	ctx.declare(d.Name, d.DeclaredType, d.Mutable)
	return nil
}

// analyzeAssignment requires the target already be declared and mutable,
// and the RHS type be assignment-compatible with its declared type. Only
// the bare form x @ x is rejected as self-assignment: unlike a
// declaration initializer, the target may appear inside a larger RHS
// expression (the loop-increment idiom depends on it).
func analyzeAssignment(ctx *analyzerContext, a *Assignment) error {
	info, live := ctx.isLive(a.Name)
	if !live {
		return newError(UndeclaredVariable, a.Line(), 0, a.Name, "%q was never declared", a.Name)
	}
	if !info.mutable {
		return newError(ImmutableAssignment, a.Line(), 0, a.Name, "%q is not mutable", a.Name)
	}
	if id, ok := a.Expr.(*Identifier); ok && id.Name == a.Name {
		return newError(SelfAssignment, a.Line(), 0, a.Name, "%q cannot be assigned to itself", a.Name)
	}

	rhsType, err := analyzeExpr(ctx, a.Expr)
	if err != nil {
		return err
	}
	if !isAssignmentCompatible(rhsType, info.typ) {
		return newError(TypeMismatch, a.Line(), 0, a.Name,
			"cannot assign a %s value to %s %q", rhsType, info.typ, a.Name)
	}
	return nil
}

func analyzeIf(ctx *analyzerContext, n *If) error {
	condType, err := analyzeExpr(ctx, n.Condition)
	if err != nil {
		return err
	}
	if condType != BOOL {
		return newError(TypeMismatch, n.Line(), 0, "", "a condition must be bool, got %s", condType)
	}
	if err := analyzeBlock(ctx, n.Then); err != nil {
		return err
	}
	for _, elif := range n.Elifs {
		elifType, err := analyzeExpr(ctx, elif.Condition)
		if err != nil {
			return err
		}
		if elifType != BOOL {
			return newError(TypeMismatch, elif.Line(), 0, "", "a condition must be bool, got %s", elifType)
		}
		if err := analyzeBlock(ctx, elif.Block); err != nil {
			return err
		}
	}
	if n.Else != nil {
		if err := analyzeBlock(ctx, n.Else); err != nil {
			return err
		}
	}
	return nil
}

func analyzeWhile(ctx *analyzerContext, n *While) error {
	condType, err := analyzeExpr(ctx, n.Condition)
	if err != nil {
		return err
	}
	if condType != BOOL {
		return newError(TypeMismatch, n.Line(), 0, "", "a condition must be bool, got %s", condType)
	}
	return analyzeBlock(ctx, n.Body)
}

func analyzeBlock(ctx *analyzerContext, blk *CodeBlock) error {
	ctx.push()
	defer ctx.pop()
	for _, stmt := range blk.Statements {
		if err := analyzeStatement(ctx, stmt); err != nil {
			return err
		}
	}
	if blk.Return != nil {
		if _, err := analyzeExpr(ctx, blk.Return.Expr); err != nil {
			return err
		}
	}
	return nil
}

// analyzeExpr type-checks e and returns its inferred DataType.
func analyzeExpr(ctx *analyzerContext, e Expr) (DataType, error) {
	switch n := e.(type) {
	case *NumberLiteral:
		val, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			return 0, newError(TypeMismatch, n.Line(), 0, n.Text, "%q is not a valid integer literal", n.Text)
		}
		return classifyMagnitude(val), nil

	case *BooleanLiteral:
		return BOOL, nil

	case *Identifier:
		if ctx.currentlyInitializing != "" && n.Name == ctx.currentlyInitializing {
			return 0, newError(SelfAssignment, n.Line(), 0, n.Name,
				"%q cannot reference itself in its own initializer", n.Name)
		}
		info, live := ctx.isLive(n.Name)
		if !live {
			return 0, newError(UndeclaredVariable, n.Line(), 0, n.Name, "%q was never declared", n.Name)
		}
		return info.typ, nil

	case *UnaryOp:
		operandType, err := analyzeExpr(ctx, n.Operand)
		if err != nil {
			return 0, err
		}
		if operandType != BOOL {
			return 0, newError(TypeMismatch, n.Line(), 0, "", "the operand of a negation must be bool, got %s", operandType)
		}
		return BOOL, nil

	case *BinaryOp:
		return analyzeBinaryOp(ctx, n)
	}
	return 0, newError(TypeMismatch, e.Line(), 0, "", "unrecognized expression")
}

func analyzeBinaryOp(ctx *analyzerContext, b *BinaryOp) (DataType, error) {
	leftType, err := analyzeExpr(ctx, b.Left)
	if err != nil {
		return 0, err
	}
	rightType, err := analyzeExpr(ctx, b.Right)
	if err != nil {
		return 0, err
	}

	switch {
	case b.Op.IsComparison():
		if (leftType == BOOL) != (rightType == BOOL) {
			return 0, newError(TypeMismatch, b.Line(), 0, "", "cannot compare %s with %s", leftType, rightType)
		}
		return BOOL, nil

	case b.Op.IsLogical():
		if leftType != BOOL || rightType != BOOL {
			return 0, newError(TypeMismatch, b.Line(), 0, "", "%s requires bool operands", b.Op)
		}
		return BOOL, nil

	default:
		if leftType == BOOL || rightType == BOOL {
			return 0, newError(TypeMismatch, b.Line(), 0, "", "arithmetic operands may not be bool")
		}
		result := wider(leftType, rightType)
		b.ResultType = &result
		return result, nil
	}
}
