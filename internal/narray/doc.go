// Package narray provides a dense n-dimensional float64 array with the
// trailing axis reserved for subjects.
//
// Arrays are stored flat in row-major order, so with shape (p1,...,pk,n)
// the n measurements belonging to one parameter position are contiguous.
// Reductions over the subject axis and broadcasts back to full shape are
// plain slice passes:
//
//	a, _ := narray.FromSlice([]int{2, 3}, data) // 2 parameters, 3 subjects
//	for j := 0; j < a.Params(); j++ {
//		subjects := a.SubjectSlice(j)
//		// reduce subjects ...
//	}
//
// Dense values are not safe for concurrent mutation. Arithmetic helpers
// (Add, Sub, Scale) always allocate fresh results and leave operands
// untouched.
package narray
