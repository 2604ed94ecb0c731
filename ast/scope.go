package ast

// VarBinding records one name introduced into a VarScope: the name, the
// location of the identifier that introduced it, and the Var it stands
// for.
type VarBinding struct {
	Name   string
	IDLoc  Location
	Target *Var
}

// VarScope is one node of the variable-scope tree (§3). Bindings is
// ordered front-inserted-wins: Lookup scans front to back and the first
// match is nearest-binding-wins within this scope, falling back to Parent
// when nothing matches here.
type VarScope struct {
	Owner    Node
	Parent   *VarScope
	Bindings []VarBinding
}

// Bind front-inserts a new binding so later lookups in this scope see the
// most recently bound name first, matching §3's "inserted front-first so
// nearest-binding wins" rule. Front versus back only matters when one
// scope binds the same name twice, as in `local x = 1, x = 2; x`, where
// the second x wins; each ForSpec of a comprehension gets a child scope
// of its own, so iteration variables never share one.
func (s *VarScope) Bind(name string, idLoc Location, target *Var) {
	s.Bindings = append([]VarBinding{{Name: name, IDLoc: idLoc, Target: target}}, s.Bindings...)
}

// Lookup walks this scope then its ancestors, returning the first
// matching binding's Var, or nil.
func (s *VarScope) Lookup(name string) *Var {
	for cur := s; cur != nil; cur = cur.Parent {
		for _, b := range cur.Bindings {
			if b.Name == name {
				return b.Target
			}
		}
	}
	return nil
}

// FieldBinding records one field key introduced into a FieldScope.
type FieldBinding struct {
	Name   string
	KeyLoc Location
	Target *Field
}

// FieldScope is the set of field bindings of one Object. Unlike
// VarScope, field scopes do not inherit from a lexical parent; they are
// composed explicitly at provider query time by walking Binary(Plus)
// (§4.4 find_field_scope). The unexported super field is used only for
// the super chain a composed view builds, not for lexical nesting.
type FieldScope struct {
	Owner    *Object
	Bindings []FieldBinding
	// super is set when this FieldScope is a composed view produced by
	// find_field_scope for a Binary(Plus) node: lookups that miss here
	// fall back to it, implementing the super chain.
	super *FieldScope
}

func (s *FieldScope) Bind(name string, keyLoc Location, target *Field) {
	s.Bindings = append(s.Bindings, FieldBinding{Name: name, KeyLoc: keyLoc, Target: target})
}

// Lookup returns every binding for name in this scope, then (if none
// matched) in the super chain — this is the "R's bindings then L's"
// behavior find_field_scope's composed view needs.
func (s *FieldScope) Lookup(name string) []FieldBinding {
	var out []FieldBinding
	for cur := s; cur != nil; cur = cur.super {
		for _, b := range cur.Bindings {
			if b.Name == name {
				out = append(out, b)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return out
}

// ComposeFieldScope builds the "R over L" view find_field_scope's
// Binary(Plus) case needs: a lookup against it checks right's own
// bindings first, then falls back to left.
func ComposeFieldScope(left, right *FieldScope) *FieldScope {
	return &FieldScope{Owner: right.Owner, Bindings: right.Bindings, super: left}
}
