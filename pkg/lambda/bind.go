package lambda

import (
	"fmt"

	"github.com/samber/lo"
)

// bind turns every free occurrence of name in t into a variable bound to id.
// Abstractions that declare name themselves are not entered: their
// occurrences already belong to the closer binder.
func bind(t Term, name rune, id BinderID) {
	switch t := t.(type) {
	case *Var:
		if t.IsFree() && t.Name == name {
			t.Binder = id
		}
	case *Abs:
		if t.Param != name {
			bind(t.Body, name, id)
		}
	case *App:
		bind(t.Fun, name, id)
		bind(t.Arg, name, id)
	}
}

// Release detaches the body of a from its binder: every variable bound to a
// becomes free again. The abstraction must not be used afterwards.
func (a *Abs) Release() Term {
	walkVars(a.Body, func(v *Var) {
		if v.Binder == a.ID {
			v.Binder = Free
		}
	})
	return a.Body
}

// HasFree reports whether a free variable called name occurs in t.
func HasFree(t Term, name rune) bool {
	switch t := t.(type) {
	case *Var:
		return t.IsFree() && t.Name == name
	case *Abs:
		return HasFree(t.Body, name)
	case *App:
		return HasFree(t.Fun, name) || HasFree(t.Arg, name)
	}
	return false
}

// FreeNames returns the names of the free variables of t in order of first
// occurrence.
func FreeNames(t Term) []rune {
	var names []rune
	walkVars(t, func(v *Var) {
		if v.IsFree() {
			names = append(names, v.Name)
		}
	})
	return lo.Uniq(names)
}

// BinderNames returns the names declared by abstractions inside t.
func BinderNames(t Term) []rune {
	var names []rune
	walk(t, func(t Term) {
		if abs, ok := t.(*Abs); ok {
			names = append(names, abs.Param)
		}
	})
	return lo.Uniq(names)
}

func walk(t Term, fn func(Term)) {
	fn(t)
	switch t := t.(type) {
	case *Abs:
		walk(t.Body, fn)
	case *App:
		walk(t.Fun, fn)
		walk(t.Arg, fn)
	}
}

func walkVars(t Term, fn func(*Var)) {
	walk(t, func(t Term) {
		if v, ok := t.(*Var); ok {
			fn(v)
		}
	})
}

// Check verifies the structural invariants of e: the term is a tree, every
// bound variable refers to an enclosing abstraction, and names agree between
// a bound variable, its abstraction and the arena.
func Check(e *Expr) error {
	seen := make(map[Term]bool)
	scope := make(map[BinderID]rune)
	var check func(Term) error
	check = func(t Term) error {
		if t == nil {
			return fmt.Errorf("nil term")
		}
		if seen[t] {
			return fmt.Errorf("node %s has more than one parent", t)
		}
		seen[t] = true
		switch t := t.(type) {
		case *Var:
			if t.IsFree() {
				return nil
			}
			name, ok := scope[t.Binder]
			if !ok {
				return fmt.Errorf("variable %c bound to binder %d outside its scope", t.Name, t.Binder)
			}
			if name != t.Name {
				return fmt.Errorf("variable %c bound to binder %d named %c", t.Name, t.Binder, name)
			}
		case *Abs:
			name, ok := e.Arena.Name(t.ID)
			if !ok {
				return fmt.Errorf("abstraction %c has unknown binder %d", t.Param, t.ID)
			}
			if name != t.Param {
				return fmt.Errorf("abstraction %c disagrees with arena name %c", t.Param, name)
			}
			if _, dup := scope[t.ID]; dup {
				return fmt.Errorf("binder %d declared twice on one path", t.ID)
			}
			scope[t.ID] = t.Param
			defer delete(scope, t.ID)
			return check(t.Body)
		case *App:
			if err := check(t.Fun); err != nil {
				return err
			}
			return check(t.Arg)
		}
		return nil
	}
	return check(e.Term)
}
