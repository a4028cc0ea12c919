package pkg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateDefault(t *testing.T) {
	c := GenerateDefault()

	if c.Sandbox.MaxSteps != 0 {
		t.Errorf("expected max_steps 0, got %d", c.Sandbox.MaxSteps)
	}
	if len(c.Modules.Disabled) != 0 {
		t.Errorf("expected no disabled modules, got %v", c.Modules.Disabled)
	}
	if c.Repl.Prompt != "phx> " {
		t.Errorf("unexpected prompt %q", c.Repl.Prompt)
	}
	if c.Repl.Continue != "...> " {
		t.Errorf("unexpected continue prompt %q", c.Repl.Continue)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	c := GenerateDefault()
	c.Sandbox.MaxSteps = 5000
	c.Modules.Disabled = []string{"system", "data"}
	c.Repl.Prompt = ">> "

	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded.Sandbox.MaxSteps != 5000 {
		t.Errorf("expected max_steps 5000, got %d", loaded.Sandbox.MaxSteps)
	}
	if len(loaded.Modules.Disabled) != 2 || loaded.Modules.Disabled[0] != "system" || loaded.Modules.Disabled[1] != "data" {
		t.Errorf("unexpected disabled list %v", loaded.Modules.Disabled)
	}
	if loaded.Repl.Prompt != ">> " {
		t.Errorf("expected prompt %q, got %q", ">> ", loaded.Repl.Prompt)
	}
	// 文件未设置的字段保留默认值
	if loaded.Repl.Continue != "...> " {
		t.Errorf("expected default continue prompt, got %q", loaded.Repl.Continue)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	content := "[sandbox]\nmax_steps = 100\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Sandbox.MaxSteps != 100 {
		t.Errorf("expected max_steps 100, got %d", c.Sandbox.MaxSteps)
	}
	if c.Repl.Prompt != "phx> " {
		t.Errorf("expected default prompt, got %q", c.Repl.Prompt)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid toml")
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src", "scripts")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("[sandbox]\nmax_steps = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// 从子目录向上查找
	found := FindConfigFile(sub)
	if found == "" {
		t.Fatal("expected to find config from subdirectory")
	}
	if filepath.Base(found) != ConfigFileName {
		t.Errorf("unexpected config path %q", found)
	}

	// 从脚本文件所在目录查找
	script := filepath.Join(sub, "main.phx")
	if err := os.WriteFile(script, []byte("print(1)"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(script); got != found {
		t.Errorf("expected %q, got %q", found, got)
	}

	// 不存在的起点
	if got := FindConfigFile(filepath.Join(root, "missing")); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestGetProjectRoot(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	got := GetProjectRoot(sub)
	want, _ := filepath.Abs(root)
	// t.TempDir 在 macOS 上可能带符号链接，按解析后的路径比较
	gotResolved, _ := filepath.EvalSymlinks(got)
	wantResolved, _ := filepath.EvalSymlinks(want)
	if gotResolved != wantResolved {
		t.Errorf("expected project root %q, got %q", wantResolved, gotResolved)
	}
}

func TestLoadForScript(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "app.phx")
	if err := os.WriteFile(script, []byte("print(1)"), 0644); err != nil {
		t.Fatal(err)
	}

	// 没有配置文件时回退默认
	c := LoadForScript(script)
	if c.Sandbox.MaxSteps != 0 || c.Repl.Prompt != "phx> " {
		t.Error("expected default config without phixeo.toml")
	}

	// 有配置文件时生效
	content := "[sandbox]\nmax_steps = 42\n"
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	c = LoadForScript(script)
	if c.Sandbox.MaxSteps != 42 {
		t.Errorf("expected max_steps 42, got %d", c.Sandbox.MaxSteps)
	}

	// 配置损坏时回退默认
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("broken ["), 0644); err != nil {
		t.Fatal(err)
	}
	c = LoadForScript(script)
	if c.Sandbox.MaxSteps != 0 {
		t.Errorf("expected fallback to default, got max_steps %d", c.Sandbox.MaxSteps)
	}
}
