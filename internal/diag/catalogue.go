package diag

// catalogue maps diagnostic IDs to fmt-style message templates. Spec §6
// calls this "an external diagnostics table"; since that table lives
// outside the core's scope, this is a minimal catalogue covering every
// ID the core itself produces (enumerated across §4 and §7).
var catalogue = map[string]string{
	// Semantic Actions (§4.3)
	"err_reserved_package_name":  "package name %q is reserved",
	"err_reserved_identifier":    "identifier %q starting with '__' is reserved",
	"err_use_self":               "package %q cannot use itself",
	"err_use_duplicate":          "duplicate use of package %q",
	"err_use_alias_is_pkg_name":  "alias %q is the same as the package's own name",
	"err_use_alias_duplicate":    "duplicate alias %q",
	"err_local_on_typedef":       "'local' is not allowed on a type definition",
	"err_local_on_global":        "'local' is not allowed on this global",
	"err_local_on_return_type":   "'local' is not allowed on a function return type",
	"err_local_on_param":         "'local' is not allowed on a function parameter",
	"err_duplicate_member":       "duplicate member %q",
	"err_duplicate_param":        "duplicate parameter name %q",
	"err_default_arg_order":      "parameter %q must have a default value (follows a defaulted parameter)",

	// Package Registry (§4.2)
	"err_duplicate_definition": "redefinition of %q",

	// File Scope / Resolver (§4.4)
	"err_package_has_alias":      "use %q through its alias instead",
	"err_unknown_type":           "unknown type %q",
	"err_type_not_public":        "type %q is not public",
	"err_unknown_package":        "unknown package %q",

	// Function Analyser (§4.5)
	"err_not_constant_expr":                    "expression is not a compile-time constant",
	"err_break_outside_loop_or_switch":         "'break' statement not in a loop or switch",
	"err_continue_outside_loop":                "'continue' statement not in a loop",
	"err_undeclared_var_use":                   "use of undeclared identifier %q",
	"err_unknown_package_symbol":                "package %q has no symbol %q",
	"err_not_public":                            "%q is not public",
	"err_no_member":                             "no member named %q",
	"err_not_struct_or_union":                   "member reference base type %q is not a struct or union",
	"err_not_subscriptable":                     "cannot subscript a value of type %q",
	"err_typecheck_assign_const":                "cannot assign to const-qualified value",
	"err_invalid_elemsof_type":                  "elemsof operand must be an array or enum variable",
	"err_deref_requires_pointer":                "indirection requires a pointer operand",
	"err_arrow_on_package":                      "'->' cannot be applied to a package, use '.' instead",
	"err_call_not_function":                     "called object is not a function",
	"err_typecheck_call_too_many_args":          "too many arguments to call (expected %d, have %d)",
	"err_typecheck_call_too_many_args_at_most":  "too many arguments to call (expected at most %d, have %d)",
	"err_typecheck_call_too_few_args":           "too few arguments to call (expected %d, have %d)",
	"err_typecheck_call_too_few_args_at_least":  "too few arguments to call (expected at least %d, have %d)",

	// Conversion matrix (§4.5.3)
	"warn_impcast_integer_precision": "implicit conversion loses integer precision (%s to %s)",
	"warn_impcast_integer_sign":      "implicit conversion changes signedness (%s to %s)",
	"warn_impcast_float_integer":     "implicit conversion from floating-point to integer (%s to %s)",
	"err_illegal_type_conversion":    "illegal type conversion from %s to %s",
	"warn_impcast_float_precision":   "implicit conversion loses floating-point precision (%s to %s)",

	// Notes
	"note_previous_definition": "previous definition of %q is here",
	"note_did_you_mean":        "did you mean %q?",
}
