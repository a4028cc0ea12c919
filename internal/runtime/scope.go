package runtime

// ============================================================================
// Scope - 作用域链
// ============================================================================
//
// 每个作用域持有变量、函数、类、组件四张名字表和一个固定的父指针。
// 查找沿父链向外；声明只写入当前作用域。
//
// 赋值是宽容的：沿链找到已有绑定则就地更新，整条链都没有时
// 在最内层作用域隐式声明。
//
// ============================================================================

// Scope 作用域
type Scope struct {
	parent *Scope

	vars       map[string]Value
	consts     map[string]bool // 标记为 const 的变量名
	funcs      map[string]*Function
	classes    map[string]*Class
	components map[string]*Component
}

// NewScope 创建全局作用域
func NewScope() *Scope {
	return &Scope{
		vars:       make(map[string]Value),
		consts:     make(map[string]bool),
		funcs:      make(map[string]*Function),
		classes:    make(map[string]*Class),
		components: make(map[string]*Component),
	}
}

// Child 创建子作用域
func (s *Scope) Child() *Scope {
	child := NewScope()
	child.parent = s
	return child
}

// Parent 返回父作用域（全局作用域返回 nil）
func (s *Scope) Parent() *Scope {
	return s.parent
}

// ============================================================================
// 变量
// ============================================================================

// DeclareVar 在当前作用域声明变量，允许遮蔽外层同名变量
func (s *Scope) DeclareVar(name string, v Value, isConst bool) {
	s.vars[name] = v
	if isConst {
		s.consts[name] = true
	} else {
		delete(s.consts, name)
	}
}

// LookupVar 沿链查找变量
func (s *Scope) LookupVar(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return NullValue, false
}

// AssignVar 沿链赋值
//
// 找到已有绑定则就地更新；整条链都没有时在最内层隐式声明。
// 目标是 const 时返回 false。
func (s *Scope) AssignVar(name string, v Value) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			if cur.consts[name] {
				return false
			}
			cur.vars[name] = v
			return true
		}
	}

	// 隐式声明
	s.vars[name] = v
	return true
}

// ============================================================================
// 函数
// ============================================================================

// DeclareFunc 在当前作用域声明函数
func (s *Scope) DeclareFunc(fn *Function) {
	s.funcs[fn.Name] = fn
}

// LookupFunc 沿链查找函数
func (s *Scope) LookupFunc(name string) (*Function, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if fn, ok := cur.funcs[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// ============================================================================
// 类
// ============================================================================

// DeclareClass 在当前作用域声明类
func (s *Scope) DeclareClass(c *Class) {
	s.classes[c.Name] = c
}

// LookupClass 沿链查找类
func (s *Scope) LookupClass(name string) (*Class, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if c, ok := cur.classes[name]; ok {
			return c, true
		}
	}
	return nil, false
}

// ============================================================================
// 组件
// ============================================================================

// DeclareComponent 在当前作用域声明组件
func (s *Scope) DeclareComponent(c *Component) {
	s.components[c.Name] = c
}

// LookupComponent 沿链查找组件
func (s *Scope) LookupComponent(name string) (*Component, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if c, ok := cur.components[name]; ok {
			return c, true
		}
	}
	return nil, false
}

// ============================================================================
// 统一解析
// ============================================================================

// Resolve 按 变量 > 函数 > 类 > 组件 的顺序解析名称
//
// 标识符求值使用这个顺序：同一层的变量遮蔽同名函数。
func (s *Scope) Resolve(name string) (Value, bool) {
	if v, ok := s.LookupVar(name); ok {
		return v, true
	}
	if fn, ok := s.LookupFunc(name); ok {
		return NewFunc(fn), true
	}
	if c, ok := s.LookupClass(name); ok {
		return NewClass(c), true
	}
	if c, ok := s.LookupComponent(name); ok {
		return NewComponent(c), true
	}
	return NullValue, false
}
