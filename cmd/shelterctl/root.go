package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/shelter-fetch/internal/adapters/api"
	"github.com/DanielPopoola/shelter-fetch/internal/adapters/session"
	"github.com/DanielPopoola/shelter-fetch/internal/asyncdata"
	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/resources"
)

// app holds what every subcommand needs, built once the flags are parsed.
type app struct {
	apiURL      string
	sessionFile string
	jsonOut     bool

	store     *session.TokenStore
	resources *resources.Composables
	session   *resources.Session
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "shelterctl",
		Short:         "shelterctl talks to the dog shelter API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base address (default: SHELTER_API__BASE_URL or http://localhost:8000)")
	root.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "session file (default: SHELTER_SESSION__FILE or the user cache dir)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newNewsCmd(a),
		newTagsCmd(a),
		newDogsCmd(a),
		newStatsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}

	path := a.sessionFile
	if path == "" {
		path = cfg.Session.File
	}
	if path == "" {
		if path, err = session.DefaultSessionFile(); err != nil {
			return err
		}
	}

	logger := cfg.Logger.NewLoggerTo(cmd.ErrOrStderr())

	storage, err := session.NewFileStorage(path)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	a.store = session.NewTokenStore(storage, logger)

	client, err := api.NewBrowserClient(cfg.API, a.store, api.WithLogger(logger))
	if err != nil {
		return err
	}
	fetch := api.NewRetryClient(client, cfg.Retry, logger)

	cache := asyncdata.NewCache(asyncdata.WithLogger(logger))
	a.resources = resources.New(cache, fetch)
	a.session = resources.NewSession(client, a.store, cache)
	return nil
}

// print writes v as indented JSON when --json is set, otherwise hands w to
// the text renderer.
func (a *app) print(w io.Writer, v any, text func(io.Writer) error) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(w)
}

func tagNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
