package sliceutil

// Map applies f to every element of v. The result is never nil, so an empty
// input still serializes as an empty list.
func Map[From any, To any](v []From, f func(From) To) []To {
	out := make([]To, 0, len(v))
	for _, item := range v {
		out = append(out, f(item))
	}
	return out
}
