package cmd

import (
	"fmt"
	"log"

	applog "github.com/RJBOGA/JAP/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	themeLight = "light"
	themeDark  = "dark"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the persisted theme preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{themeLight, themeDark},
	Run: func(_ *cobra.Command, args []string) {
		theme(args)
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func theme(args []string) {
	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := newSessionStore(config)

	if len(args) == 0 {
		current := store.Theme()
		if current == "" {
			current = themeLight
		}
		fmt.Println(current)
		return
	}

	if args[0] != themeLight && args[0] != themeDark {
		logger.Fatal("unknown theme", zap.String("theme", args[0]))
	}

	if err := store.SetTheme(args[0]); err != nil {
		logger.Fatal("persisting the theme", zap.Error(err))
	}

	fmt.Printf("Theme set to %s.\n", args[0])
}
