package analysis

import "github.com/coral-lang/coralc/internal/types"

// Conversion codes, spec §4.5.3.
const (
	ConvOK                   = 0
	ConvIntegerPrecisionLoss = 1
	ConvIntegerSignChange    = 2
	ConvFloatToInteger       = 3
	ConvIncompatible         = 4
	ConvFloatPrecisionLoss   = 5
)

type numericCategory int

const (
	catUnsigned numericCategory = iota
	catSigned
	catFloat
	catString
	catVoid
)

type numericProfile struct {
	category numericCategory
	width    int
}

// profiles describes each builtin kind's conversion-relevant shape.
// BOOL is modelled as a 1-bit unsigned integer: it then falls out of
// the same widening/narrowing rules as the other integer kinds rather
// than needing a special case, and INT is I32-width per spec §3 ("its
// width is target-dependent (treated as I32 for conversion purposes)").
var profiles = [types.VOID + 1]numericProfile{
	types.U8:     {catUnsigned, 8},
	types.U16:    {catUnsigned, 16},
	types.U32:    {catUnsigned, 32},
	types.U64:    {catUnsigned, 64},
	types.I8:     {catSigned, 8},
	types.I16:    {catSigned, 16},
	types.I32:    {catSigned, 32},
	types.I64:    {catSigned, 64},
	types.F32:    {catFloat, 32},
	types.F64:    {catFloat, 64},
	types.INT:    {catSigned, 32},
	types.BOOL:   {catUnsigned, 1},
	types.STRING: {catString, 0},
	types.VOID:   {catVoid, 0},
}

// conversionMatrix[from][to] is the code of spec §4.5.3's table, built
// once from the rules below rather than hand-transcribed as 196
// literals (the rules themselves are the spec — this is their direct
// encoding, and TestConversionMatrix_Symmetric checks the invariant
// spec §8 test 5 requires of them).
var conversionMatrix [types.VOID + 1][types.VOID + 1]int

func init() {
	for from := types.U8; from <= types.VOID; from++ {
		for to := types.U8; to <= types.VOID; to++ {
			conversionMatrix[from][to] = computeConversion(from, to)
		}
	}
}

func computeConversion(from, to types.BuiltinKind) int {
	if from == to {
		return ConvOK
	}
	fp, tp := profiles[from], profiles[to]

	if fp.category == catString || tp.category == catString {
		return ConvIncompatible
	}
	if fp.category == catVoid || tp.category == catVoid {
		return ConvIncompatible
	}

	switch {
	case fp.category == catFloat && tp.category == catFloat:
		if tp.width >= fp.width {
			return ConvOK
		}
		return ConvFloatPrecisionLoss

	case fp.category == catFloat && tp.category != catFloat:
		return ConvFloatToInteger

	case fp.category != catFloat && tp.category == catFloat:
		return ConvOK

	case fp.category == tp.category: // both signed, or both unsigned
		if tp.width >= fp.width {
			return ConvOK
		}
		return ConvIntegerPrecisionLoss

	default: // signed <-> unsigned
		if tp.width > fp.width {
			return ConvOK
		}
		return ConvIntegerSignChange
	}
}

// ConversionCode returns the spec §4.5.3 code for converting a value
// of builtin kind from to builtin kind to.
func ConversionCode(from, to types.BuiltinKind) int {
	return conversionMatrix[from][to]
}

// conversionDiagID maps a non-zero conversion code to its diagnostic ID.
var conversionDiagID = map[int]string{
	ConvIntegerPrecisionLoss: "warn_impcast_integer_precision",
	ConvIntegerSignChange:    "warn_impcast_integer_sign",
	ConvFloatToInteger:       "warn_impcast_float_integer",
	ConvIncompatible:         "err_illegal_type_conversion",
	ConvFloatPrecisionLoss:   "warn_impcast_float_precision",
}
