package runtime

import "testing"

func TestRegistryLoadStandardModules(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{
		"system", "math", "geometry", "neural", "ui",
		"animation", "fractal", "optimization", "data",
	} {
		m := r.Load("std:" + name)
		if m.Name != name {
			t.Errorf("expected module name %q, got %q", name, m.Name)
		}
		if len(m.Exports) == 0 {
			t.Errorf("module %q has no exports", name)
		}
	}
}

func TestRegistryCaching(t *testing.T) {
	r := NewRegistry()

	first := r.Load("std:math")
	second := r.Load("std:math")
	if first != second {
		t.Error("expected cached module instance on repeat load")
	}

	// 不同注册表的缓存互相独立
	other := NewRegistry().Load("std:math")
	if first == other {
		t.Error("expected separate registries to build separate instances")
	}
}

func TestRegistryUnknownModuleFallback(t *testing.T) {
	r := NewRegistry()

	m := r.Load("no_such_module")
	if m == nil {
		t.Fatal("expected fallback module, got nil")
	}
	if m.Name != "no_such_module" {
		t.Errorf("expected fallback name preserved, got %q", m.Name)
	}
	if len(m.Exports) != 0 {
		t.Errorf("expected empty exports, got %d", len(m.Exports))
	}
}

func TestRegistryBarePathBindsEmptyModule(t *testing.T) {
	r := NewRegistry()

	// 构造器解析只对 std: 前缀生效，裸名绑定空模块
	bare := r.Load("math")
	if bare.Name != "math" {
		t.Errorf("expected binding name %q, got %q", "math", bare.Name)
	}
	if len(bare.Exports) != 0 {
		t.Errorf("expected empty exports for bare path, got %d", len(bare.Exports))
	}

	if len(r.Load("std:math").Exports) == 0 {
		t.Error("expected std:math to resolve the full module")
	}

	// 非 std 前缀同样绑定空模块
	if len(r.Load("ext:math").Exports) != 0 {
		t.Error("expected empty exports for non-std prefix")
	}
}

func TestRegistryDisable(t *testing.T) {
	r := NewRegistry()
	r.Disable([]string{"math"})

	m := r.Load("std:math")
	if len(m.Exports) != 0 {
		t.Error("expected disabled module to load as empty module")
	}

	// 其他模块不受影响
	if len(r.Load("std:system").Exports) == 0 {
		t.Error("expected system module unaffected")
	}
}

func TestRegistryRegisterOverride(t *testing.T) {
	r := NewRegistry()

	// 先加载以填充缓存
	if len(r.Load("std:math").Exports) == 0 {
		t.Fatal("expected standard math module")
	}

	r.Register("math", func() *Module {
		return &Module{
			Name:    "math",
			Exports: map[string]Value{"custom": NewNumber(1)},
		}
	})

	// 覆盖后缓存失效，加载得到宿主模块
	m := r.Load("std:math")
	if _, ok := m.Exports["custom"]; !ok {
		t.Error("expected host override to replace cached module")
	}
}

func TestBindingName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"std:math", "math"},
		{"ext:host", "host"},
		{"plain", "plain"},
		{"a:b:c", "c"},
	}

	for _, tt := range tests {
		if got := BindingName(tt.path); got != tt.expected {
			t.Errorf("BindingName(%q): expected %q, got %q", tt.path, tt.expected, got)
		}
	}
}
