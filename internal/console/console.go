//go:build aarch64

// Package console drives the PL011 UART QEMU exposes at virt's fixed MMIO
// address, the kernel's only output device. It plays the same role
// uartPuts/uartPutHex* played in the board-specific kernel: every other
// package that needs to report something writes through here rather than
// poking the UART registers itself.
package console

import (
	"mazarin-virt/internal/arch"
	"mazarin-virt/internal/kernelconfig"
)

const (
	regData = 0x00
	regFlag = 0x18

	flagTXFF = 1 << 5 // transmit FIFO full
)

// PutByte blocks until the transmit FIFO has room, then writes one byte.
func PutByte(b byte) {
	for arch.MMIORead32(kernelconfig.UARTBase+regFlag)&flagTXFF != 0 {
	}
	arch.MMIOWrite32(kernelconfig.UARTBase+regData, uint32(b))
}

// PutString writes s, expanding a bare '\n' to "\r\n" the way a raw serial
// console expects.
func PutString(s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			PutByte('\r')
		}
		PutByte(c)
	}
}

var hexDigits = "0123456789abcdef"

// PutHex32 writes v as exactly 8 lowercase hex digits, zero-padded.
func PutHex32(v uint32) {
	for shift := 28; shift >= 0; shift -= 4 {
		PutByte(hexDigits[(v>>uint(shift))&0xf])
	}
}

// PutHex64 writes v as exactly 16 lowercase hex digits, zero-padded.
func PutHex64(v uint64) {
	for shift := 60; shift >= 0; shift -= 4 {
		PutByte(hexDigits[(v>>uint(shift))&0xf])
	}
}

// PutUint32 writes v in decimal with no leading zeros.
func PutUint32(v uint32) {
	if v == 0 {
		PutByte('0')
		return
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	PutString(string(buf[i:]))
}

// PutMemSize writes a byte count using whichever of B, KiB or MiB keeps the
// mantissa readable, mirroring uartPutMemSize's formatting.
func PutMemSize(bytes uint64) {
	switch {
	case bytes >= 1<<20:
		PutUint32(uint32(bytes / (1 << 20)))
		PutString(" MiB")
	case bytes >= 1<<10:
		PutUint32(uint32(bytes / (1 << 10)))
		PutString(" KiB")
	default:
		PutUint32(uint32(bytes))
		PutString(" B")
	}
}

// Panic prints msg prefixed with "KERNEL PANIC: " and halts the CPU in an
// infinite loop. There is no recovery: a panic on a single-hardware-thread
// kernel with no supervisor to restart it is terminal by definition.
func Panic(msg string) {
	PutString("KERNEL PANIC: ")
	PutString(msg)
	PutByte('\n')
	for {
	}
}
