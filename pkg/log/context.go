package log

import "context"

type fieldsKey struct{}

// WithFields returns a copy of ctx carrying extra key/value pairs for every log entry.
// A key that is already present keeps its position and takes the new value.
func WithFields(ctx context.Context, kv ...any) context.Context {
	if len(kv) == 0 {
		return ctx
	}
	existing := fieldsFrom(ctx)
	merged := make([]any, 0, len(existing)+len(kv))
	merged = append(merged, existing...)

	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			merged = append(merged, kv[i])
			break
		}
		if j := indexOfKey(merged, kv[i]); j >= 0 {
			merged[j+1] = kv[i+1]
			continue
		}
		merged = append(merged, kv[i], kv[i+1])
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func indexOfKey(fields []any, key any) int {
	k, ok := key.(string)
	if !ok {
		return -1
	}
	for i := 0; i+1 < len(fields); i += 2 {
		if s, ok := fields[i].(string); ok && s == k {
			return i
		}
	}
	return -1
}

func fieldsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).([]any)
	return fields
}
