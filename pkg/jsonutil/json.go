package jsonutil

import "encoding/json"

// Encode 序列化失败时返回空串，调用方用于日志、缓存等非关键路径
func Encode(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func Marshal(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

func Decode(src string, dst any) error {
	return json.Unmarshal([]byte(src), dst)
}
