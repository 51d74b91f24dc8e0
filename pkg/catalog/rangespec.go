package catalog

// RangeSpec is the flexible numeric criterion produced by the AI filter
// translator: any combination of min/max/exact, all optional.
type RangeSpec struct {
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Exact *float64 `json:"exact"`
}

// Repair sanitizes a model-produced range: negative bounds clamp to zero,
// exact forces min=max=exact, and an inverted min/max pair is swapped.
// Idempotent. Caller-supplied query ranges never go through this; those are
// rejected instead of repaired.
func (r RangeSpec) Repair() RangeSpec {
	out := RangeSpec{
		Min:   copyClamped(r.Min),
		Max:   copyClamped(r.Max),
		Exact: copyClamped(r.Exact),
	}

	if out.Exact != nil {
		v := *out.Exact
		out.Min = &v
		max := v
		out.Max = &max
	}

	if out.Min != nil && out.Max != nil && *out.Min > *out.Max {
		out.Min, out.Max = out.Max, out.Min
	}
	return out
}

// IsZero reports whether no bound is set.
func (r RangeSpec) IsZero() bool {
	return r.Min == nil && r.Max == nil && r.Exact == nil
}

func copyClamped(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	if out < 0 {
		out = 0
	}
	return &out
}
