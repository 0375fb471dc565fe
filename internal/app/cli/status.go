package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nanhostd/internal/app/statusipc"
	"nanhostd/internal/nan/event"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Query a running nand instance for a diagnostic snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := statusipc.FetchSnapshot(statusipc.SocketPath())
			if err != nil {
				return err
			}

			printSnapshot(cmd, resp.Snapshot)

			return nil
		},
	}
}

func printSnapshot(cmd *cobra.Command, snap event.Snapshot) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "phase:              %s\n", snap.Phase)
	fmt.Fprintf(out, "usage enabled:      %t\n", snap.UsageEnabled)
	fmt.Fprintf(out, "clients:            %d\n", snap.ClientCount)
	fmt.Fprintf(out, "host queue depth:   %d\n", snap.HostQueueLen)
	fmt.Fprintf(out, "firmware queue:     %d\n", snap.FirmwareQueueLen)
	fmt.Fprintf(out, "send blocked:       %t\n", snap.Blocked)
	fmt.Fprintf(out, "command gate state: %s\n", snap.GateState)
	fmt.Fprintf(out, "discovery mac:      %02x:%02x:%02x:%02x:%02x:%02x\n",
		snap.DiscoveryMAC[0], snap.DiscoveryMAC[1], snap.DiscoveryMAC[2],
		snap.DiscoveryMAC[3], snap.DiscoveryMAC[4], snap.DiscoveryMAC[5])
}
