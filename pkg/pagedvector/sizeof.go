package pagedvector

import "unsafe"

// sizeOf reports unsafe.Sizeof(v); isolated in its own file so the unsafe
// import stays easy to audit.
func sizeOf[T any](v T) uintptr { return unsafe.Sizeof(v) }
