package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jrsteele09/go-signin/auth"
	"github.com/jrsteele09/go-signin/internal/bootstrap"
	"github.com/jrsteele09/go-signin/internal/config"
	"github.com/jrsteele09/go-signin/internal/metrics"
	"github.com/jrsteele09/go-signin/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string
	loginTimeout  time.Duration
	loginQuiet    bool
	loginMetrics  bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print the resulting session.",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address to sign in with")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted for when omitted)")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 30*time.Second, "maximum time to wait for the identity backend")
	loginCmd.Flags().BoolVarP(&loginQuiet, "quiet", "q", false, "print only the session token")
	loginCmd.Flags().BoolVar(&loginMetrics, "metrics", false, "write sign-in metrics to stderr when done")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.GetLogLevel())
	if !loginQuiet {
		displayAppname(cmd.ErrOrStderr(), cfg.GetAppName())
	}
	if loginMetrics {
		defer func() {
			if err := metrics.WriteText(cmd.ErrOrStderr(), prometheus.DefaultGatherer); err != nil {
				log.Warn().Err(err).Msg("failed to write metrics")
			}
		}()
	}

	password := loginPassword
	if password == "" {
		if password, err = promptPassword(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancel()

	repo, err := bootstrap.NewRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("runLogin: %w", err)
	}

	session, err := repo.SignIn(ctx, loginEmail, password)
	if errors.Is(err, auth.ErrFailedToAuthenticate) {
		return err
	}
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.GetProvider()).Msg("identity backend error")
		return err
	}

	printSession(cmd.OutOrStdout(), session, loginQuiet)
	return nil
}

func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(w, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("promptPassword: %w", err)
	}
	return strings.TrimRight(string(pw), "\r\n"), nil
}

func printSession(w io.Writer, session sessions.Session, quiet bool) {
	if quiet {
		fmt.Fprintln(w, session.SessionToken())
		return
	}
	fmt.Fprintf(w, "kind:     %s\n", session.Kind())
	fmt.Fprintf(w, "username: %s\n", session.Username())
	fmt.Fprintf(w, "email:    %s\n", session.Email())
	if header := sessions.BearerHeader(session); header != "" {
		fmt.Fprintf(w, "header:   Authorization: %s\n", header)
	}
}
