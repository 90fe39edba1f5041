package interp

import (
	"fmt"

	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/objects"
)

// runStatements executes stmts in the current frame, stopping as soon as
// an error is thrown or a break/continue/return flag is raised. It does
// not push its own frame; callers that need one use execBlock.
func (i *Interpreter) runStatements(stmts []ast.Stmt) {
	for _, s := range stmts {
		i.execStmt(s)
		if i.thrown != nil || i.returnCalled || i.breakCalled || i.continueCalled {
			return
		}
	}
}

// execBlock pushes a fresh frame, runs the block's statements, and pops
// the frame again regardless of how execution stopped.
func (i *Interpreter) execBlock(b *ast.BlockStmt) {
	i.current.PushFrame()
	i.runStatements(b.Statements)
	i.current.PopFrame()
}

func (i *Interpreter) execStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		i.evalExpr(n.Expr)
	case *ast.IfStmt:
		i.execIf(n)
	case *ast.WhileStmt:
		i.execWhile(n)
	case *ast.ForStmt:
		i.execFor(n)
	case *ast.ReturnStmt:
		i.execReturn(n)
	case *ast.AssignStmt:
		i.execAssign(n)
	case *ast.TryCatchStmt:
		i.execTryCatch(n)
	case *ast.ThrowStmt:
		i.execThrow(n)
	case *ast.BreakStmt:
		i.execBreak(n)
	case *ast.ContinueStmt:
		i.execContinue(n)
	case *ast.BlockStmt:
		i.execBlock(n)
	}
}

func (i *Interpreter) asBoolean(v ast.Expr, context string) (objects.Boolean, bool) {
	val := i.evalExpr(v)
	if i.thrown != nil {
		return objects.Boolean{}, false
	}
	b, ok := val.(objects.Boolean)
	if !ok {
		i.throwNew(objects.ErrType, fmt.Sprintf("%s must be a Boolean", context), v.Pos())
		return objects.Boolean{}, false
	}
	return b, true
}

func (i *Interpreter) execIf(n *ast.IfStmt) {
	cond, ok := i.asBoolean(n.Cond, "if condition")
	if !ok {
		return
	}
	if cond.Value {
		i.execBlock(n.Block)
		return
	}
	for _, elif := range n.Elifs {
		c, ok := i.asBoolean(elif.Cond, "elif condition")
		if !ok {
			return
		}
		if c.Value {
			i.execBlock(elif.Block)
			return
		}
	}
	if n.Else != nil {
		i.execBlock(n.Else)
	}
}

func (i *Interpreter) execWhile(n *ast.WhileStmt) {
	i.current.EnterLoop()
	defer i.current.ExitLoop()
	for {
		cond, ok := i.asBoolean(n.Cond, "while condition")
		if !ok {
			return
		}
		if !cond.Value {
			return
		}
		i.continueCalled = false
		i.execBlock(n.Block)
		i.continueCalled = false
		if i.thrown != nil || i.returnCalled {
			return
		}
		if i.breakCalled {
			i.breakCalled = false
			return
		}
	}
}

// execFor implements `for (var : iterable)`. Shadowing a name already
// bound in the current activation, or reusing the iterable's own name as
// the loop variable, is rejected up front with VariableError.
func (i *Interpreter) execFor(n *ast.ForStmt) {
	if id, ok := n.Iterable.(*ast.Identifier); ok && id.Name == n.VarName {
		i.throwNew(objects.ErrVariable, fmt.Sprintf("for loop variable %q cannot shadow the iterable", n.VarName), n.Pos())
		return
	}
	if i.current.Has(n.VarName) {
		i.throwNew(objects.ErrVariable, fmt.Sprintf("for loop variable %q already exists in this scope", n.VarName), n.Pos())
		return
	}

	iterVal := i.evalExpr(n.Iterable)
	if i.thrown != nil {
		return
	}
	arr, ok := iterVal.(*objects.Array)
	if !ok {
		i.throwNew(objects.ErrType, "for loop iterable must be an Array", n.Iterable.Pos())
		return
	}

	i.current.EnterLoop()
	defer i.current.ExitLoop()
	for _, elem := range arr.Elements {
		i.current.Set(n.VarName, elem)
		i.continueCalled = false
		i.execBlock(n.Block)
		i.continueCalled = false
		if i.thrown != nil || i.returnCalled {
			return
		}
		if i.breakCalled {
			i.breakCalled = false
			return
		}
	}
}

func (i *Interpreter) execReturn(n *ast.ReturnStmt) {
	if n.Value == nil {
		i.returnValue = objects.Null{}
		i.returnCalled = true
		return
	}
	val := i.evalExpr(n.Value)
	if i.thrown != nil {
		return
	}
	i.returnValue = val
	i.returnCalled = true
}

func (i *Interpreter) execBreak(n *ast.BreakStmt) {
	if !i.current.InLoop() {
		i.throwNew(objects.ErrExpression, "break used outside of a loop", n.Pos())
		return
	}
	i.breakCalled = true
}

func (i *Interpreter) execContinue(n *ast.ContinueStmt) {
	if !i.current.InLoop() {
		i.throwNew(objects.ErrExpression, "continue used outside of a loop", n.Pos())
		return
	}
	i.continueCalled = true
}

// execThrow evaluates the thrown expression; anything that is not itself
// an Error value is replaced with a synthesized TypeError, and the
// error's Position is always stamped with the throw statement's own
// position (the language requires every thrown error to carry a
// position, regardless of where it was originally constructed).
func (i *Interpreter) execThrow(n *ast.ThrowStmt) {
	val := i.evalExpr(n.Expr)
	if i.thrown != nil {
		return
	}
	se, ok := val.(*objects.ScriptError)
	if !ok {
		se = objects.NewScriptError(objects.ErrType, "only an Error value can be thrown", n.Pos())
	} else {
		se.Position = n.Pos()
	}
	i.thrown = se
}

// execTryCatch runs the try block; if it left a thrown error behind, the
// catch clauses are tried in source order and the first whose type list
// names the error's kind (or is empty, or lists the base kind Error, either
// of which catches everything) handles it.
// An unmatched error keeps propagating.
func (i *Interpreter) execTryCatch(n *ast.TryCatchStmt) {
	i.execBlock(n.Try)
	if i.thrown == nil {
		return
	}
	for _, clause := range n.Catches {
		if !catchMatches(clause, i.thrown.Kind) {
			continue
		}
		caught := i.thrown
		i.thrown = nil
		i.current.PushFrame()
		if clause.ErrorVar != "" {
			i.current.Set(clause.ErrorVar, caught)
		}
		i.runStatements(clause.Block.Statements)
		i.current.PopFrame()
		return
	}
}

func catchMatches(c *ast.CatchClause, thrownKind string) bool {
	if len(c.ErrorTypes) == 0 {
		return true
	}
	for _, t := range c.ErrorTypes {
		if t == objects.ErrGeneric || t == thrownKind {
			return true
		}
	}
	return false
}
