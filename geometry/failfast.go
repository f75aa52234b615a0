//go:build !dyntabledebug

package geometry

const failFast = false
