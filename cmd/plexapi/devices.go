package main

import (
	"fmt"
	"strconv"

	"github.com/mmcdole/plexapi/internal/plex"
	"github.com/spf13/cobra"
)

func newDevicesCommand(ctx *commandContext) *cobra.Command {
	var serversOnly bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List the devices registered to the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.accountClient()
			if err != nil {
				return err
			}
			devices, err := client.Devices(cmd.Context())
			if err != nil {
				return err
			}
			if serversOnly {
				devices = devices.Servers()
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, devices)
			}
			printHeading(cmd, "Devices", len(devices))
			rows := make([][]string, 0, len(devices))
			for _, d := range devices {
				rows = append(rows, []string{
					d.Name,
					d.Product,
					d.ProductVersion,
					d.Platform,
					d.ProvidesList,
					strconv.Itoa(len(d.Connections)),
					preferredEndpoint(d),
				})
			}
			headers := []string{"Name", "Product", "Version", "Platform", "Provides", "Conns", "Endpoint"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&serversOnly, "servers", false, "Only list media servers")
	return cmd
}

func preferredEndpoint(d plex.Device) string {
	conn, err := d.PreferredConnection()
	if err != nil {
		return dimStyle.Render("none")
	}
	if conn.IsLocal() {
		return conn.Endpoint() + dimStyle.Render(" (local)")
	}
	return conn.Endpoint()
}
