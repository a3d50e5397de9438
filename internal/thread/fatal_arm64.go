//go:build aarch64

package thread

import "mazarin-virt/internal/console"

func fatal(msg string) {
	console.Panic(msg)
}
