package lambda

// Arena owns the binder records of one expression. Bound variables refer to
// their abstraction by index into the arena rather than by pointer.
type Arena struct {
	binders []binder
}

type binder struct {
	name rune
}

func NewArena() *Arena {
	return &Arena{}
}

// Len returns the number of binders ever allocated.
func (a *Arena) Len() int {
	return len(a.binders)
}

// Name returns the current name of binder id.
func (a *Arena) Name(id BinderID) (rune, bool) {
	if id < 0 || int(id) >= len(a.binders) {
		return 0, false
	}
	return a.binders[id].name, true
}

func (a *Arena) alloc(name rune) BinderID {
	a.binders = append(a.binders, binder{name: name})
	return BinderID(len(a.binders) - 1)
}

// Var returns a new free variable.
func (a *Arena) Var(name rune) *Var {
	return &Var{Name: name, Binder: Free}
}

// App returns the application of fun to arg.
func (a *Arena) App(fun, arg Term) *App {
	return &App{Fun: fun, Arg: arg}
}

// Apply folds terms left-associatively: Apply(a, b, c) is ((a b) c).
func (a *Arena) Apply(head Term, rest ...Term) Term {
	t := head
	for _, r := range rest {
		t = a.App(t, r)
	}
	return t
}

// Abs builds an abstraction over body and binds every free occurrence of
// param inside it to the new binder.
func (a *Arena) Abs(param rune, body Term) *Abs {
	abs := &Abs{Param: param, ID: a.alloc(param), Body: body}
	bind(body, param, abs.ID)
	return abs
}

// Copy returns a deep copy of t. Abstractions inside t get fresh binder IDs
// and their bound variables are remapped; free variables and variables bound
// outside t keep their binding.
func (a *Arena) Copy(t Term) Term {
	return a.copyTerm(t, map[BinderID]BinderID{})
}

func (a *Arena) copyTerm(t Term, ids map[BinderID]BinderID) Term {
	switch t := t.(type) {
	case *Var:
		v := &Var{Name: t.Name, Binder: t.Binder}
		if id, ok := ids[t.Binder]; ok {
			v.Binder = id
		}
		return v
	case *Abs:
		id := a.alloc(t.Param)
		ids[t.ID] = id
		return &Abs{Param: t.Param, ID: id, Body: a.copyTerm(t.Body, ids)}
	case *App:
		return &App{Fun: a.copyTerm(t.Fun, ids), Arg: a.copyTerm(t.Arg, ids)}
	}
	return t
}

// rename changes the name of abs and of every variable bound to it.
func (a *Arena) rename(abs *Abs, to rune) {
	a.binders[abs.ID].name = to
	abs.Param = to
	walkVars(abs.Body, func(v *Var) {
		if v.Binder == abs.ID {
			v.Name = to
		}
	})
}
