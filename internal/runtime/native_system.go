package runtime

import (
	"os"
	goruntime "runtime"
	"time"
)

// ============================================================================
// std:system 模块
// ============================================================================

// Version 语言版本号
const Version = "0.3.0"

func buildSystemModule() *Module {
	exports := map[string]Value{
		"version":  NewString(Version),
		"platform": NewString(goruntime.GOOS),
		"arch":     NewString(goruntime.GOARCH),

		"now":   NewNative("system.now", nativeSystemNow),
		"clock": NewNative("system.clock", nativeSystemClock),
		"env":   NewNative("system.env", nativeSystemEnv),
	}
	return &Module{Name: "system", Exports: exports}
}

// nativeSystemNow 当前 Unix 毫秒时间戳
func nativeSystemNow(args []Value) (Value, error) {
	return NewNumber(float64(time.Now().UnixMilli())), nil
}

// nativeSystemClock 当前 Unix 秒时间戳
func nativeSystemClock(args []Value) (Value, error) {
	return NewNumber(float64(time.Now().Unix())), nil
}

// nativeSystemEnv 读取环境变量，不存在时返回空字符串
func nativeSystemEnv(args []Value) (Value, error) {
	name, err := argString("system.env", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewString(os.Getenv(name)), nil
}
