package runtime

import "strings"

// ============================================================================
// Registry - 标准库模块注册表
// ============================================================================
//
// 固定的构造器集合。首次导入调用构造器并缓存，之后的导入
// 直接查缓存。未识别的名称返回一个合法的空导出模块，不报错。
//
// 宿主程序可以通过 Register 追加模块；脚本自身不能注册。
// 注册表随解释器实例创建，缓存只在一次运行内有效。
//
// ============================================================================

// ModuleBuilder 模块构造器
type ModuleBuilder func() *Module

// Registry 模块注册表
type Registry struct {
	builders map[string]ModuleBuilder
	cache    map[string]*Module
	disabled map[string]bool
}

// NewRegistry 创建注册表并装入全部标准模块
func NewRegistry() *Registry {
	r := &Registry{
		builders: make(map[string]ModuleBuilder),
		cache:    make(map[string]*Module),
		disabled: make(map[string]bool),
	}

	r.builders["system"] = buildSystemModule
	r.builders["math"] = buildMathModule
	r.builders["geometry"] = buildGeometryModule
	r.builders["neural"] = buildNeuralModule
	r.builders["ui"] = buildUIModule
	r.builders["animation"] = buildAnimationModule
	r.builders["fractal"] = buildFractalModule
	r.builders["optimization"] = buildOptimizationModule
	r.builders["data"] = buildDataModule

	return r
}

// Register 注册宿主扩展模块，覆盖同名标准模块，脚本里以 std:<name> 导入
func (r *Registry) Register(name string, builder ModuleBuilder) {
	r.builders[name] = builder
	delete(r.cache, name)
}

// Disable 禁用一组模块（来自配置），导入时回退为空模块
func (r *Registry) Disable(names []string) {
	for _, n := range names {
		r.disabled[n] = true
	}
}

// BindingName 导入路径对应的绑定名称
//
// "std:math" 绑定 math，无前缀的路径原样绑定。
func BindingName(path string) string {
	if i := strings.LastIndex(path, ":"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Names 返回所有已注册的模块名（无序）
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for n := range r.builders {
		names = append(names, n)
	}
	return names
}

// Load 按导入路径解析模块
//
// 只有带 std: 前缀的路径参与构造器解析；宿主注册的模块同样通过
// std: 命名空间加载。其余路径一律绑定空导出模块。
// 导入从不失败：未识别的名称和被禁用的模块也返回空导出模块。
func (r *Registry) Load(path string) *Module {
	name := BindingName(path)

	if !strings.HasPrefix(path, "std:") {
		return &Module{Name: name, Exports: make(map[string]Value)}
	}

	if m, ok := r.cache[name]; ok {
		return m
	}

	var m *Module
	builder, ok := r.builders[name]
	if !ok || r.disabled[name] {
		m = &Module{Name: name, Exports: make(map[string]Value)}
	} else {
		m = builder()
	}

	r.cache[name] = m
	return m
}
