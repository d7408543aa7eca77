package demo

import "github.com/spetersoncode/reduce"

// Counter is the state of the counter slice.
type Counter struct {
	Value int `json:"value"`
	Step  int `json:"step"`
}

// NewCounterSlice creates the counter slice.
//
// Actions: counter/increment, counter/decrement, counter/add (amount),
// counter/setStep (step) and counter/reset.
func NewCounterSlice() *reduce.Slice[Counter] {
	return reduce.CreateSlice(reduce.SliceConfig[Counter]{
		Name:         "counter",
		InitialState: Counter{Step: 1},
		Reducers: map[string]reduce.CaseHandler[Counter]{
			"increment": func(d *Counter, _ reduce.Action) {
				d.Value += d.Step
			},
			"decrement": func(d *Counter, _ reduce.Action) {
				d.Value -= d.Step
			},
			"add": func(d *Counter, a reduce.Action) {
				if n, ok := intPayload(a.Payload, "amount"); ok {
					d.Value += n
				}
			},
			"setStep": func(d *Counter, a reduce.Action) {
				if n, ok := intPayload(a.Payload, "step"); ok && n > 0 {
					d.Step = n
				}
			},
			"reset": func(d *Counter, _ reduce.Action) {
				*d = Counter{Step: d.Step}
			},
		},
	})
}

// intPayload reads an integer payload given either directly or, as JSON
// clients send it, as a number or as an object field named key.
func intPayload(payload any, key string) (int, bool) {
	switch v := payload.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case map[string]any:
		return intPayload(v[key], "")
	default:
		return 0, false
	}
}

// stringPayload is the string counterpart of intPayload.
func stringPayload(payload any, key string) (string, bool) {
	switch v := payload.(type) {
	case string:
		return v, true
	case map[string]any:
		s, ok := v[key].(string)
		return s, ok
	default:
		return "", false
	}
}
