// Package cmd implements the concord command line interface.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/concordapp/concord/internal/config"
	"github.com/concordapp/concord/internal/errors"
	"github.com/concordapp/concord/internal/event"
	"github.com/concordapp/concord/internal/logging"
	"github.com/concordapp/concord/internal/negotiation"
	"github.com/concordapp/concord/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "concord",
	Short: "Guided reconciliation sessions for two people",
	Long: `Concord walks two people through a structured reconciliation:
naming the issue, reviewing it in the other's words, reflection,
a scheduled conversation, and written agreements with a follow-up
a week later.

Most commands act as one of the two configured participants;
select who with --as.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/concord/config.yaml)")
	rootCmd.PersistentFlags().String("as", "", "acting participant name")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CONCORD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The config file is optional; defaults cover a fresh install.
	_ = viper.ReadInConfig()
}

// app bundles the wired components a command needs.
type app struct {
	cfg   *config.Config
	store *store.Store
	bus   *event.Bus
	ctrl  *negotiation.Controller
	log   *logging.Logger
}

// newApp loads config and opens the store, controller and logger. Events
// published by the controller are mirrored into the structured log.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Paths.DataDir)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Paths.DataDir, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	bus.SubscribeAll(func(e event.Event) {
		log.Debug("event", "type", e.Type())
	})
	bus.Subscribe(event.TypeStepAdvanced, func(e event.Event) {
		ev := e.(event.StepAdvancedEvent)
		log.WithSession(ev.SessionID).Info("step changed", "from", ev.From, "to", ev.To, "by", ev.ActedBy)
	})
	bus.Subscribe(event.TypeSessionResolved, func(e event.Event) {
		ev := e.(event.SessionResolvedEvent)
		log.WithSession(ev.SessionID).Info("session resolved", "review_at", ev.ReviewAt)
	})

	return &app{
		cfg:   cfg,
		store: st,
		bus:   bus,
		ctrl:  negotiation.NewController(st, bus),
		log:   log,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if a.log != nil {
		_ = a.log.Close()
	}
}

// actor resolves the --as flag against the configured pair. An empty flag
// defaults to the first participant.
func (a *app) actor(cmd *cobra.Command) (negotiation.Participant, error) {
	name, _ := cmd.Flags().GetString("as")
	name = strings.TrimSpace(name)
	one, _ := a.cfg.Pair()
	if name == "" {
		return one, nil
	}
	if _, ok := a.cfg.Participant(name); !ok {
		return "", fmt.Errorf("%w: %q (configured: %s and %s)",
			errors.ErrUnknownParticipant, name, a.cfg.Participants.One.Name, a.cfg.Participants.Two.Name)
	}
	return negotiation.Participant(name), nil
}

// reportOutcome prints the standard line after a mutation attempt. Guard
// and role refusals are not errors; they read as "nothing to do".
func reportOutcome(cmd *cobra.Command, s negotiation.Session, changed bool) {
	if !changed {
		cmd.Printf("no change: session %s is at %s and this action is not available to you right now\n", s.ID, s.Step)
		return
	}
	cmd.Printf("ok: session %s is at %s\n", s.ID, s.Step)
}
