// Package diagnostics is a flat, structured error/warning/note log. It
// never renders source spans or color — that is an external
// collaborator's job, see internal/renderer for an example
// collaborator. Each diagnostic carries a typed Kind + Message + Pos +
// contextual fields rather than Go's plain `error`.
package diagnostics

// Kind enumerates every diagnostic the analyzer can emit,
// plus ProtocolConformanceFailure, added for the supplemented protocol
// conformance check (SPEC_FULL.md §3).
type Kind string

const (
	UnknownFunction               Kind = "UnknownFunction"
	UnknownType                   Kind = "UnknownType"
	CallNonFunction               Kind = "CallNonFunction"
	UnknownField                  Kind = "UnknownField"
	UnknownVariableName           Kind = "UnknownVariableName"
	InvalidOperands               Kind = "InvalidOperands"
	CannotSubscript               Kind = "CannotSubscript"
	CannotCoerce                  Kind = "CannotCoerce"
	VarArgsInNonForeignDecl       Kind = "VarArgsInNonForeignDecl"
	ForeignFunctionWithBody       Kind = "ForeignFunctionWithBody"
	NonForeignFunctionWithoutBody Kind = "NonForeignFunctionWithoutBody"
	ForeignVarWithRHS             Kind = "ForeignVarWithRHS"
	DereferenceNonPointer         Kind = "DereferenceNonPointer"
	CannotSwitch                  Kind = "CannotSwitch"
	NonPointerNil                 Kind = "NonPointerNil"
	NotAllPathsReturn             Kind = "NotAllPathsReturn"
	NoViableOverload              Kind = "NoViableOverload"
	Candidates                    Kind = "Candidates" // note kind
	AmbiguousReference            Kind = "AmbiguousReference"
	AddressOfRValue               Kind = "AddressOfRValue"
	BreakNotAllowed               Kind = "BreakNotAllowed"
	ContinueNotAllowed            Kind = "ContinueNotAllowed"
	FieldOfFunctionType           Kind = "FieldOfFunctionType"
	DuplicateMethod               Kind = "DuplicateMethod"
	DuplicateField                Kind = "DuplicateField"
	ReferenceSelfInProp           Kind = "ReferenceSelfInProp"
	PoundFunctionOutsideFunction  Kind = "PoundFunctionOutsideFunction"
	AssignToConstant              Kind = "AssignToConstant"
	DeinitOnStruct                Kind = "DeinitOnStruct"
	IndexIntoNonTuple             Kind = "IndexIntoNonTuple"
	OutOfBoundsTupleField         Kind = "OutOfBoundsTupleField"

	// ProtocolConformanceFailure is additive (SPEC_FULL.md §3): a
	// TypeDecl declares conformance to a protocol but is missing one of
	// its required methods.
	ProtocolConformanceFailure Kind = "ProtocolConformanceFailure"

	// UnreachableCode is the warning spec.md §4.3.8 describes ("code
	// after X will not be executed").
	UnreachableCode Kind = "UnreachableCode"
)
