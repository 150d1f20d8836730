package domain

import "time"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrPtr returns a pointer to s, or nil when s is empty.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrValue dereferences p, returning "" for nil.
func StrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// NowMillis returns the current time as unix milliseconds.
func NowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}
