package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/junzis/opensky-go/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stored credentials",
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store OpenSky credentials",
		Long: "Store the OpenSky Network username and password used for the Trino " +
			"token exchange. Values not passed as flags are prompted for; the " +
			"password prompt does not echo.",
		Example: `  # Prompt for both values
  opensky config set

  # Non-interactive
  opensky config set --username jan --password s3cret`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				cfg = &config.Config{}
			}

			if username == "" {
				fmt.Print("OpenSky username: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("OpenSky password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			cfg.Username = username
			cfg.Password = password
			if err := cfg.Save(); err != nil {
				return err
			}

			path, _ := config.Path()
			fmt.Printf("credentials saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "OpenSky Network username")
	cmd.Flags().StringVar(&password, "password", "", "OpenSky Network password")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored configuration with the password masked",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Printf("username:    %s\n", valueOrUnset(cfg.Username))
			fmt.Printf("password:    %s\n", maskSecret(cfg.Password))
			fmt.Printf("client_id:   %s\n", valueOrUnset(cfg.ClientID))
			fmt.Printf("cache purge: %s\n", valueOrUnset(cfg.CachePurge))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	return strings.Repeat("*", 8)
}
