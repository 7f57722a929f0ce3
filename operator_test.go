package oink

import "testing"

func TestOperator_InvertIsInvolution(t *testing.T) {
	for op := range operatorTable {
		if got := op.Invert().Invert(); got != op {
			t.Errorf("%s: double inversion gave %s", op, got)
		}
	}
}

func TestOperator_InversionPairs(t *testing.T) {
	pairs := map[Operator]Operator{
		OpPlus:     OpMinus,
		OpMultiply: OpDivide,
		OpEquals:   OpNotEquals,
		OpLess:     OpGreaterEqual,
		OpGreater:  OpLessEqual,
	}
	for a, b := range pairs {
		if a.Invert() != b || b.Invert() != a {
			t.Errorf("%s and %s are not mutual inverses", a, b)
		}
	}
	// AND/OR carry no inverse; mood lines negate the whole condition.
	if OpAnd.Invert() != OpAnd || OpOr.Invert() != OpOr {
		t.Error("logical operators must pass through inversion unchanged")
	}
}

func TestOperator_FromSymbol(t *testing.T) {
	for op, info := range operatorTable {
		got, ok := operatorFromSymbol(info.symbol)
		if !ok {
			t.Errorf("symbol %q did not resolve", info.symbol)
			continue
		}
		if got != op {
			t.Errorf("symbol %q resolved to %s, want %s", info.symbol, got, op)
		}
	}
	if _, ok := operatorFromSymbol("%"); ok {
		t.Error("'%' is not an operator and must not resolve")
	}
}

func TestOperator_LLVMMnemonics(t *testing.T) {
	cases := map[Operator]string{
		OpPlus:         "add",
		OpMinus:        "sub",
		OpMultiply:     "mul",
		OpDivide:       "sdiv",
		OpEquals:       "icmp eq",
		OpNotEquals:    "icmp ne",
		OpGreater:      "icmp sgt",
		OpLess:         "icmp slt",
		OpGreaterEqual: "icmp sge",
		OpLessEqual:    "icmp sle",
		OpAnd:          "and",
		OpOr:           "or",
	}
	for op, want := range cases {
		if got := op.LLVM(); got != want {
			t.Errorf("%s: got mnemonic %q, want %q", op, got, want)
		}
	}
}
