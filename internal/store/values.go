package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// GetJSON decodes the JSON value at key into v. It reports false when the key
// is absent and wraps ErrDecode when the stored bytes are not valid for v.
func GetJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.GetString(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("%w %s: %v", ErrDecode, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.SetString(ctx, key, string(b))
}

// GetStrings reads a string list. Absent keys yield an empty list.
func GetStrings(ctx context.Context, kv KV, key string) ([]string, error) {
	var out []string
	if _, err := GetJSON(ctx, kv, key, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStrings writes a string list.
func SetStrings(ctx context.Context, kv KV, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	return SetJSON(ctx, kv, key, values)
}

// GetBool reads a boolean, returning def when the key is absent.
func GetBool(ctx context.Context, kv KV, key string, def bool) (bool, error) {
	raw, ok, err := kv.GetString(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%w %s: %v", ErrDecode, key, err)
	}
	return b, nil
}

// SetBool writes a boolean.
func SetBool(ctx context.Context, kv KV, key string, v bool) error {
	return kv.SetString(ctx, key, strconv.FormatBool(v))
}
