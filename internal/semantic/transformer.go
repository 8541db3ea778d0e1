package semantic

import "github.com/yonihemi/trill/internal/ast"

// breakTarget is whatever construct `break`/`continue` target: a
// *ast.WhileStmt or a *ast.SwitchStmt (spec.md §4.2).
type breakTarget = ast.Statement

// Transformer is a depth-first walker that maintains the scope stacks
// every analyzer hook consults (current function, current closure,
// current break target, current type-declaration context, and the
// lexical varBindings chain).
type Transformer struct {
	varBindings map[string]interface{} // name -> *ast.VarAssignDecl | *ast.FuncArgumentDecl

	currentFunction *ast.FuncDecl
	currentClosure  *ast.ClosureExpr
	currentTypeDecl *ast.TypeDecl
	breakTargets    []breakTarget
}

// NewTransformer returns a Transformer with an empty top-level scope.
func NewTransformer() *Transformer {
	return &Transformer{varBindings: make(map[string]interface{})}
}

// PushScope snapshots the current varBindings chain and returns it so a
// matching PopScope can restore it exactly (spec.md §4.2's "entering a
// CompoundStmt saves varBindings; exiting restores it"). Callers should
// always pair this with `defer t.PopScope(saved)` so scope state is
// restored on every exit path, including early error returns (spec.md
// §5).
func (t *Transformer) PushScope() map[string]interface{} {
	saved := make(map[string]interface{}, len(t.varBindings))
	for k, v := range t.varBindings {
		saved[k] = v
	}
	return saved
}

// PopScope restores varBindings to a value previously returned by
// PushScope.
func (t *Transformer) PopScope(saved map[string]interface{}) {
	t.varBindings = saved
}

// Define binds name in the active lexical scope.
func (t *Transformer) Define(name string, decl interface{}) {
	t.varBindings[name] = decl
}

// Lookup resolves name against the active lexical scope.
func (t *Transformer) Lookup(name string) (interface{}, bool) {
	v, ok := t.varBindings[name]
	return v, ok
}

// CurrentFunction is the innermost enclosing FuncDecl, or nil at the top
// level.
func (t *Transformer) CurrentFunction() *ast.FuncDecl { return t.currentFunction }

// WithFunction runs fn with currentFunction set to f, restoring the
// previous value afterward regardless of how fn returns.
func (t *Transformer) WithFunction(f *ast.FuncDecl, fn func()) {
	prev := t.currentFunction
	t.currentFunction = f
	defer func() { t.currentFunction = prev }()
	fn()
}

// CurrentClosure is the innermost enclosing ClosureExpr, or nil if none.
func (t *Transformer) CurrentClosure() *ast.ClosureExpr { return t.currentClosure }

// WithClosure runs fn with currentClosure set to cl.
func (t *Transformer) WithClosure(cl *ast.ClosureExpr, fn func()) {
	prev := t.currentClosure
	t.currentClosure = cl
	defer func() { t.currentClosure = prev }()
	fn()
}

// CurrentTypeDecl is the TypeDecl whose method/initializer body is
// currently being analyzed, or nil at the top level.
func (t *Transformer) CurrentTypeDecl() *ast.TypeDecl { return t.currentTypeDecl }

// WithTypeDecl runs fn with currentTypeDecl set to td.
func (t *Transformer) WithTypeDecl(td *ast.TypeDecl, fn func()) {
	prev := t.currentTypeDecl
	t.currentTypeDecl = td
	defer func() { t.currentTypeDecl = prev }()
	fn()
}

// PushBreakTarget marks stmt (a WhileStmt or SwitchStmt) as the
// innermost break/continue target while its body is analyzed.
func (t *Transformer) PushBreakTarget(stmt breakTarget) {
	t.breakTargets = append(t.breakTargets, stmt)
}

// PopBreakTarget pops the innermost break target.
func (t *Transformer) PopBreakTarget() {
	t.breakTargets = t.breakTargets[:len(t.breakTargets)-1]
}

// CurrentBreakTarget returns the innermost break target, or nil if none
// is active.
func (t *Transformer) CurrentBreakTarget() breakTarget {
	if len(t.breakTargets) == 0 {
		return nil
	}
	return t.breakTargets[len(t.breakTargets)-1]
}
