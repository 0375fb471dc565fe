// Command nand is the host-side control plane daemon for the Wi-Fi NAN
// subsystem (spec §1): `nand serve` runs the dispatcher loop against a
// loopback HAL adapter, and `nand status` queries a running instance for
// a diagnostic snapshot.
package main

import (
	"fmt"
	"os"

	"nanhostd/internal/app/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
