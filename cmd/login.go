package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	applog "github.com/RJBOGA/JAP/internal/logger"
	"github.com/RJBOGA/JAP/internal/portal"
	"github.com/RJBOGA/JAP/internal/secrets"
	"github.com/RJBOGA/JAP/internal/session"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the recruiting backend and persist the session",
	Run: func(cmd *cobra.Command, _ []string) {
		login(cmd)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the persisted session",
	Run: func(_ *cobra.Command, _ []string) {
		logout()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringP("email", "e", "", "account email. Prompted for when unset.")
	loginCmd.Flags().StringP("password-file", "p", "", "file holding the account password. Prompted for when unset.")

	viper.BindPFlag("password-file", loginCmd.Flags().Lookup("password-file"))
}

func login(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	email := strings.TrimSpace(cmd.Flag("email").Value.String())
	if email == "" {
		input := promptui.Prompt{
			Label: "Email",
			Validate: func(s string) error {
				if !strings.Contains(s, "@") {
					return errors.New("enter a valid email address")
				}
				return nil
			},
		}
		if email, err = input.Run(); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		email = strings.TrimSpace(email)
	}

	password, err := resolvePassword(config)
	if err != nil {
		logger.Fatal("resolving the password", zap.Error(err))
	}

	client := portal.New(ctx, logger, config.Endpoint)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	user, err := client.Login(email, password)
	if err != nil {
		var apiErr *portal.APIError
		if errors.As(err, &apiErr) {
			logger.Fatal("login rejected", zap.String("reason", apiErr.Message))
		}
		logger.Fatal("login failed", zap.Error(err))
	}

	sess := &session.Session{
		User:      *user,
		ExpiresAt: time.Now().Add(config.SessionTTL),
	}

	store := newSessionStore(config)
	if err := store.Save(sess); err != nil {
		logger.Fatal("persisting the session", zap.Error(err))
	}

	logger.Info("logged in",
		zap.String("user", sess.DisplayName()),
		zap.String("role", string(sess.User.Role)),
		zap.Time("expires_at", sess.ExpiresAt),
	)
	fmt.Printf("Welcome, %s! You are logged in as %s until %s.\n",
		sess.User.FirstName, sess.User.Role, sess.ExpiresAt.Format(time.RFC1123))
}

// resolvePassword reads the password from the configured file when one is
// set and falls back to a masked interactive prompt otherwise.
func resolvePassword(config *Config) (string, error) {
	passwordFile := strings.TrimSpace(config.PasswordFile)
	if passwordFile == "" {
		passwordFile = strings.TrimSpace(viper.GetString("password-file"))
	}

	if passwordFile != "" {
		return secrets.Load("login password", passwordFile)
	}

	input := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
	}

	return input.Run()
}

func logout() {
	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := newSessionStore(config)
	if err := store.Clear(); err != nil {
		logger.Fatal("clearing the session", zap.Error(err))
	}

	fmt.Println("Logged out.")
}
