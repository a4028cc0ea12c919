package runtime

import "testing"

func TestScopeDeclareAndLookup(t *testing.T) {
	s := NewScope()
	s.DeclareVar("x", NewNumber(1), false)

	v, ok := s.LookupVar("x")
	if !ok || v.AsNumber() != 1 {
		t.Errorf("expected x=1, got %v (found=%v)", v, ok)
	}

	if _, ok := s.LookupVar("missing"); ok {
		t.Error("expected missing variable to not be found")
	}
}

func TestScopeChainLookup(t *testing.T) {
	parent := NewScope()
	parent.DeclareVar("outer", NewString("from parent"), false)

	child := parent.Child()
	v, ok := child.LookupVar("outer")
	if !ok || v.AsString() != "from parent" {
		t.Errorf("expected chain lookup to find outer, got %v", v)
	}

	// 子作用域的声明遮蔽父作用域
	child.DeclareVar("outer", NewString("shadowed"), false)
	v, _ = child.LookupVar("outer")
	if v.AsString() != "shadowed" {
		t.Errorf("expected shadowed, got %q", v.AsString())
	}

	// 父作用域不受影响
	v, _ = parent.LookupVar("outer")
	if v.AsString() != "from parent" {
		t.Errorf("parent binding changed: %q", v.AsString())
	}
}

func TestScopeAssignWalksChain(t *testing.T) {
	parent := NewScope()
	parent.DeclareVar("count", NewNumber(0), false)

	child := parent.Child()
	if !child.AssignVar("count", NewNumber(5)) {
		t.Fatal("expected assignment to succeed")
	}

	// 赋值写入声明所在的作用域
	v, _ := parent.LookupVar("count")
	if v.AsNumber() != 5 {
		t.Errorf("expected parent count=5, got %v", v.AsNumber())
	}
}

func TestScopeAssignConst(t *testing.T) {
	s := NewScope()
	s.DeclareVar("phi", NewNumber(1.618), true)

	if s.AssignVar("phi", NewNumber(2)) {
		t.Error("expected const assignment to fail")
	}

	v, _ := s.LookupVar("phi")
	if v.AsNumber() != 1.618 {
		t.Errorf("const value changed: %v", v.AsNumber())
	}
}

func TestScopeImplicitDeclaration(t *testing.T) {
	parent := NewScope()
	child := parent.Child()

	// 未声明的名称在最内层作用域隐式声明
	if !child.AssignVar("fresh", NewNumber(1)) {
		t.Fatal("expected implicit declaration to succeed")
	}

	if _, ok := child.LookupVar("fresh"); !ok {
		t.Error("expected fresh in child scope")
	}
	if _, ok := parent.LookupVar("fresh"); ok {
		t.Error("implicit declaration leaked into parent")
	}
}

func TestScopeResolveOrder(t *testing.T) {
	s := NewScope()
	s.DeclareFunc(&Function{Name: "thing"})
	s.DeclareVar("thing", NewNumber(7), false)

	// 变量优先于同名函数
	v, ok := s.Resolve("thing")
	if !ok || v.Type != ValNumber {
		t.Errorf("expected variable to win, got %v", v.TypeName())
	}
}

func TestScopeResolveKindTables(t *testing.T) {
	s := NewScope()
	s.DeclareFunc(&Function{Name: "f"})
	s.DeclareClass(&Class{Name: "C"})
	s.DeclareComponent(&Component{Name: "W"})

	if v, ok := s.Resolve("f"); !ok || v.Type != ValFunc {
		t.Errorf("expected func, got %v", v.TypeName())
	}
	if v, ok := s.Resolve("C"); !ok || v.Type != ValClass {
		t.Errorf("expected class, got %v", v.TypeName())
	}
	if v, ok := s.Resolve("W"); !ok || v.Type != ValComponent {
		t.Errorf("expected component, got %v", v.TypeName())
	}

	// 种类表也沿作用域链查找
	child := s.Child()
	if _, ok := child.Resolve("C"); !ok {
		t.Error("expected class resolvable from child scope")
	}
}
