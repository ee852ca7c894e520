package lambda

import "fmt"

// Term represents a lambda calculus term. It is one of *Var, *Abs or *App.
type Term interface {
	String() string
	term()
}

// BinderID indexes a binder record in an Arena.
type BinderID int

// Free marks a Var with no enclosing binder.
const Free BinderID = -1

// Var represents a variable usage.
type Var struct {
	Name   rune
	Binder BinderID
}

func (*Var) term() {}

func (v *Var) String() string {
	return string(v.Name)
}

// IsFree reports whether v has no enclosing binder.
func (v *Var) IsFree() bool {
	return v.Binder == Free
}

// Abs represents an abstraction (lambda).
type Abs struct {
	Param rune
	ID    BinderID
	Body  Term
}

func (*Abs) term() {}

func (a *Abs) String() string {
	return fmt.Sprintf("(λ%c.%s)", a.Param, a.Body)
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (*App) term() {}

func (a *App) String() string {
	return fmt.Sprintf("%s %s", a.Fun, a.Arg)
}

// Expr is a term together with the arena its binders were allocated from.
type Expr struct {
	Term  Term
	Arena *Arena
}

func (e *Expr) String() string {
	return e.Term.String()
}
