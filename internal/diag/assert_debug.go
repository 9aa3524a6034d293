//go:build !arbor_release

package diag

const assertions = true
