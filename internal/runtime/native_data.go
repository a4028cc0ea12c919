package runtime

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"sort"

	"golang.org/x/crypto/pbkdf2"
)

// ============================================================================
// std:data 模块
// ============================================================================
//
// 摘要、编码和 JSON 序列化。deriveKey 使用 PBKDF2-SHA256。
//
// ============================================================================

func buildDataModule() *Module {
	exports := map[string]Value{
		"digest":       NewNative("data.digest", nativeDataDigest),
		"deriveKey":    NewNative("data.deriveKey", nativeDataDeriveKey),
		"base64Encode": NewNative("data.base64Encode", nativeDataBase64Encode),
		"base64Decode": NewNative("data.base64Decode", nativeDataBase64Decode),
		"toJson":       NewNative("data.toJson", nativeDataToJSON),
		"fromJson":     NewNative("data.fromJson", nativeDataFromJSON),
	}
	return &Module{Name: "data", Exports: exports}
}

// nativeDataDigest SHA-256 摘要的十六进制形式
func nativeDataDigest(args []Value) (Value, error) {
	s, err := argString("data.digest", args, 0)
	if err != nil {
		return NullValue, err
	}
	sum := sha256.Sum256([]byte(s))
	return NewString(hex.EncodeToString(sum[:])), nil
}

// nativeDataDeriveKey PBKDF2-SHA256 密钥派生
//
// 参数：password, salt, iterations（缺省 10000）。返回 32 字节
// 密钥的十六进制形式。
func nativeDataDeriveKey(args []Value) (Value, error) {
	password, err := argString("data.deriveKey", args, 0)
	if err != nil {
		return NullValue, err
	}
	salt, err := argString("data.deriveKey", args, 1)
	if err != nil {
		return NullValue, err
	}
	iterations := int(optNumber(args, 2, 10000))
	if iterations < 1 {
		iterations = 1
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, 32, sha256.New)
	return NewString(hex.EncodeToString(key)), nil
}

func nativeDataBase64Encode(args []Value) (Value, error) {
	s, err := argString("data.base64Encode", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewString(base64.StdEncoding.EncodeToString([]byte(s))), nil
}

// nativeDataBase64Decode 解码失败时返回 null
func nativeDataBase64Decode(args []Value) (Value, error) {
	s, err := argString("data.base64Decode", args, 0)
	if err != nil {
		return NullValue, err
	}
	decoded, decErr := base64.StdEncoding.DecodeString(s)
	if decErr != nil {
		return NullValue, nil
	}
	return NewString(string(decoded)), nil
}

// nativeDataToJSON 值的 JSON 编码，不可序列化的值返回 null
func nativeDataToJSON(args []Value) (Value, error) {
	if len(args) == 0 {
		return NullValue, nil
	}
	data, err := json.Marshal(valueToInterface(args[0]))
	if err != nil {
		return NullValue, nil
	}
	return NewString(string(data)), nil
}

// nativeDataFromJSON JSON 解码，格式错误返回 null
func nativeDataFromJSON(args []Value) (Value, error) {
	s, err := argString("data.fromJson", args, 0)
	if err != nil {
		return NullValue, err
	}
	var raw interface{}
	if jsonErr := json.Unmarshal([]byte(s), &raw); jsonErr != nil {
		return NullValue, nil
	}
	return interfaceToValue(raw), nil
}

// ============================================================================
// Value <-> interface{} 转换
// ============================================================================

// valueToInterface 把运行时值转换为可 JSON 序列化的 Go 值
//
// 函数、类等不可序列化的值映射为 null。
func valueToInterface(v Value) interface{} {
	switch v.Type {
	case ValBool:
		return v.Data.(bool)
	case ValNumber:
		return v.Data.(float64)
	case ValString:
		return v.Data.(string)
	case ValArray:
		arr := v.Data.(*Array)
		out := make([]interface{}, len(arr.Elements))
		for i, el := range arr.Elements {
			out[i] = valueToInterface(el)
		}
		return out
	case ValObject:
		obj := v.Data.(*Object)
		out := make(map[string]interface{}, len(obj.Fields))
		for k, fv := range obj.Fields {
			out[k] = valueToInterface(fv)
		}
		return out
	default:
		return nil
	}
}

// interfaceToValue 把 JSON 解码结果转换为运行时值
//
// 对象的键按字典序插入，使显示形式稳定。
func interfaceToValue(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return NullValue
	case bool:
		return NewBool(t)
	case float64:
		return NewNumber(t)
	case string:
		return NewString(t)
	case []interface{}:
		elements := make([]Value, len(t))
		for i, el := range t {
			elements[i] = interfaceToValue(el)
		}
		return NewArray(elements)
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := NewObjectData()
		for _, k := range keys {
			obj.Set(k, interfaceToValue(t[k]))
		}
		return NewObject(obj)
	default:
		return NullValue
	}
}
