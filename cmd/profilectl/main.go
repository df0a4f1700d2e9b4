// Command profilectl is the operator CLI for the profile service: schema
// migrations, the status graph, and minting bearer tokens for manual testing.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	jwttoken "maidlink/internal/jwt_token"
	"maidlink/internal/platform/config"
	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/store/migrations"
	"maidlink/pkg/requestcontext"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:          "profilectl",
		Short:        "Operate the maidlink profile service",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load before reading the environment")

	loadConfig := func() (*config.Config, error) {
		return config.Load(envFile)
	}

	root.AddCommand(newMigrateCmd(loadConfig), newTransitionsCmd(), newTokenCmd(loadConfig))
	return root
}

type configLoader func() (*config.Config, error)

func newMigrateCmd(load configLoader) *cobra.Command {
	var dsn string
	resolveDSN := func() (string, error) {
		if dsn != "" {
			return dsn, nil
		}
		cfg, err := load()
		if err != nil {
			return "", err
		}
		if cfg.Postgres.DSN == "" {
			return "", errors.New("no DSN: pass --dsn or set POSTGRES_DSN")
		}
		return cfg.Postgres.DSN, nil
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the profile schema migrations",
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres DSN (defaults to POSTGRES_DSN)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				target, err := resolveDSN()
				if err != nil {
					return err
				}
				if err := migrations.Up(target); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				target, err := resolveDSN()
				if err != nil {
					return err
				}
				if err := migrations.Down(target); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				target, err := resolveDSN()
				if err != nil {
					return err
				}
				version, dirty, err := migrations.Version(target)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
				return nil
			},
		},
	)
	return cmd
}

func newTransitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions",
		Short: "Print the profile status graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STATUS\tLABEL\tNEXT")
			for _, status := range models.AllStatuses() {
				next := make([]string, 0)
				for _, n := range models.AllowedNextStatuses(status) {
					next = append(next, n.String())
				}
				display := strings.Join(next, ", ")
				if display == "" {
					display = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", status, status.Label(), display)
			}
			return tw.Flush()
		},
	}
}

func newTokenCmd(load configLoader) *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			subject := uuid.New()
			if userID != "" {
				subject, err = uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}
			switch requestcontext.Role(role) {
			case requestcontext.RoleMember, requestcontext.RoleReviewer, requestcontext.RoleAdmin:
			default:
				return fmt.Errorf("invalid --role %q", role)
			}
			svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
			token, err := svc.GenerateAccessToken(subject, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&userID, "user", "", "Subject user id (random when empty)")
	f.StringVar(&role, "role", string(requestcontext.RoleMember), "member, reviewer or admin")
	f.DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
