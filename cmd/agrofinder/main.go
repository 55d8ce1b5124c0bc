// Package main implements the agrofinder terminal client: an
// interactive TUI plus one-shot subcommands against the AgroFinder
// semantic search service.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/config"
	"github.com/agrofinder/agrofinder/internal/health"
	"github.com/agrofinder/agrofinder/internal/logging"
	"github.com/agrofinder/agrofinder/internal/search"
	"github.com/agrofinder/agrofinder/internal/session"
	"github.com/agrofinder/agrofinder/internal/tui"
	"github.com/agrofinder/agrofinder/internal/upload"
)

var (
	configPath string
	serverURL  string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agrofinder",
	Short: "Busca semântica de documentos agro",
	Long: `agrofinder is a terminal client for the AgroFinder semantic
document search service. Run it without arguments for the interactive
interface, or use the subcommands for one-shot operations.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/agrofinder/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "service URL, overrides api.server")
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}

// tuiCmd is an explicit spelling of the default behavior, for scripts
// that want to be unambiguous about launching the interface.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Abre a interface interativa",
	RunE:  runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostra a versão do agrofinder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("agrofinder", version)
	},
}

// app bundles everything a subcommand needs.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	gate   *session.Gate
	client *api.Client
}

// newApp loads configuration and wires the shared components.
func newApp() (*app, error) {
	if err := config.EnsureDir(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.API.Server = serverURL
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	gate := session.NewGate(session.NewFileStore(cfg.Session.Path), log)
	client := api.NewClient(cfg.API.BaseURL(),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log))
	return &app{cfg: cfg, log: log, gate: gate, client: client}, nil
}

// requireAuth is the hard precondition for every remote operation.
func (a *app) requireAuth() error {
	if !a.gate.Authenticated() {
		return fmt.Errorf("não autenticado: execute 'agrofinder login' primeiro")
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	monitor := health.NewMonitor(a.gate, a.log)
	searchOrch := search.NewOrchestrator(a.gate, a.log)
	uploadOrch := upload.NewOrchestrator(a.gate, a.log)

	model := tui.New(a.client, a.gate, monitor, searchOrch, uploadOrch, a.log)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

// parseCategory maps a --category flag value onto the wire enum. An
// empty value means no filter.
func parseCategory(s string) (api.Category, error) {
	switch s {
	case "":
		return "", nil
	case string(api.CategoryAnuncio):
		return api.CategoryAnuncio, nil
	case string(api.CategoryOrganico):
		return api.CategoryOrganico, nil
	default:
		return "", fmt.Errorf("categoria inválida %q (use anuncio ou organico)", s)
	}
}
