package store

import "context"

// bufferedKV stages writes in memory over a read-through base. Reads observe
// staged writes. Nothing reaches the base until the owner flushes the writes.
type bufferedKV struct {
	base   KV
	writes map[string]*string // nil value means remove
	order  []string
}

func newBufferedKV(base KV) *bufferedKV {
	return &bufferedKV{base: base, writes: map[string]*string{}}
}

func (b *bufferedKV) GetString(ctx context.Context, key string) (string, bool, error) {
	if v, staged := b.writes[key]; staged {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
	return b.base.GetString(ctx, key)
}

func (b *bufferedKV) SetString(_ context.Context, key, value string) error {
	b.stage(key, &value)
	return nil
}

func (b *bufferedKV) Remove(_ context.Context, key string) error {
	b.stage(key, nil)
	return nil
}

func (b *bufferedKV) stage(key string, v *string) {
	if _, seen := b.writes[key]; !seen {
		b.order = append(b.order, key)
	}
	b.writes[key] = v
}

// each visits staged writes in first-write order.
func (b *bufferedKV) each(fn func(key string, value *string)) {
	for _, k := range b.order {
		fn(k, b.writes[k])
	}
}
