package keyopt

import "fmt"

// debugAssert panics when cond is false. It stands in for the original
// source's pervasive debug_assert! calls guarding NaN/infinite/out-of-range
// values in the scorer and selector hot paths (eval_funcs.rs,
// mapped_swap.rs). Go has no separate debug/release build, so this is
// always active: per spec §7, these conditions are programmer errors and
// "a release build may treat them as unrecoverable" — a panic is this
// module's unrecoverable.
func debugAssert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("keyopt: assertion failed: "+format, args...))
	}
}
