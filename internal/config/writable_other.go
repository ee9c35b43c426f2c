//go:build !unix

package config

import "os"

// writable reports whether dir carries an owner write bit.
func writable(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
