// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

// Command genhash prints the bcrypt hash of a password argument. Handy for
// seeding rows by hand during installation.
package main

import (
	"fmt"
	"os"

	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/sec"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}

	hash, err := sec.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "genhash:", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
