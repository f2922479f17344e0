//go:build !windows

package main

import "pkt.systems/psi"

func main() {
	psi.Run(submain)
}
