package oink

// DataType is one of the four primitive types of the language. Integer
// types widen in the order I16 < I32 < I64; BOOL never converts to or from
// an integer type.
type DataType int

const (
	I16 DataType = iota
	I32
	I64
	BOOL
)

func (d DataType) String() string {
	switch d {
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case BOOL:
		return "bool"
	default:
		return "unknown"
	}
}

// LLVM returns the LLVM-IR type mnemonic for this DataType.
func (d DataType) LLVM() string {
	switch d {
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case BOOL:
		return "i1"
	default:
		return "i32"
	}
}

// widenRank orders the integer types for widening comparisons; BOOL has no
// meaningful rank and is never compared against an integer type.
func (d DataType) widenRank() int {
	switch d {
	case I16:
		return 0
	case I32:
		return 1
	case I64:
		return 2
	default:
		return -1
	}
}

// isInteger reports whether d is one of I16/I32/I64.
func (d DataType) isInteger() bool {
	return d == I16 || d == I32 || d == I64
}

// wider returns the wider of two integer types, by the I16 < I32 < I64
// order. Both arguments must be integer types.
func wider(a, b DataType) DataType {
	if a.widenRank() >= b.widenRank() {
		return a
	}
	return b
}

// isAssignmentCompatible reports whether a value of type from may be
// assigned to a location declared as type to: identical types are always
// compatible, and integer types widen freely (I16 -> I32 -> I64). There is
// no narrowing and no BOOL <-> integer conversion.
func isAssignmentCompatible(from, to DataType) bool {
	if from == to {
		return true
	}
	if !from.isInteger() || !to.isInteger() {
		return false
	}
	return from.widenRank() <= to.widenRank()
}

// classifyMagnitude infers the smallest integer DataType that can hold n,
// per the widths I16 in [-32768,32767], I32 in [-2^31,2^31-1], else I64.
func classifyMagnitude(n int64) DataType {
	const (
		i16Min = -32768
		i16Max = 32767
		i32Min = -2147483648
		i32Max = 2147483647
	)
	switch {
	case n >= i16Min && n <= i16Max:
		return I16
	case n >= i32Min && n <= i32Max:
		return I32
	default:
		return I64
	}
}
