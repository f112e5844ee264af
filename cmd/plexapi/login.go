package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmcdole/plexapi/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var username, serverName, serverURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to plex.tv and store the account token",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if username == "" {
				fmt.Fprint(out, "Username or email: ")
				line, err := readLine(reader)
				if err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
				username = line
			}

			fmt.Fprint(out, "Password: ")
			password, err := readPassword(reader)
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			client, err := ctx.newClient("")
			if err != nil {
				return err
			}
			token, err := client.SignIn(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			cfg := ctx.config
			if serverName != "" {
				cfg.Server.Name = serverName
			}
			if serverURL != "" {
				cfg.Server.URL = serverURL
			}
			if err := config.SaveToken(cfg, username, token); err != nil {
				return err
			}
			ctx.logger.Info("signed in", "username", username)

			fmt.Fprintln(out, successStyle.Render("✓ Signed in as "+username))
			fmt.Fprintln(out, dimStyle.Render("Token saved to "+cfg.Path()))
			if !cfg.IsConfigured() {
				fmt.Fprintln(out, dimStyle.Render("Pick a server with `plexapi devices`, then set server.name"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "plex.tv username or email")
	cmd.Flags().StringVar(&serverName, "server", "", "Server device name to save")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "Server base URL to save")
	return cmd
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo from a terminal, or a plain line otherwise
func readPassword(r *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(r)
}
