// Package behavior defines how the results of a concurrent run are combined.
//
// A ReturnBehavior is a closed set of three values:
// - LastReturn: keep only the result produced for the final input element
// - ArrayReturn: keep every result, one slot per input element, in input order
// - ConcatArrayReturn: keep every result, splicing slice results one level deep
//
// Holder stores one validated ReturnBehavior together with its derived flags.
// Runners embed a Holder to share the same vocabulary and validation rules.
package behavior
