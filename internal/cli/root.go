package cli

import (
	"fmt"

	"github.com/mverhoef/authgate/internal/core/repository"
	"github.com/mverhoef/authgate/internal/core/service"
	"github.com/mverhoef/authgate/internal/infrastructure/sqlite"
	"github.com/mverhoef/authgate/internal/logging"
	"github.com/mverhoef/authgate/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "authgate",
	Short: "Authgate - credential issuance service",
	Long: `Authgate registers users with a username/password pair and issues
signed, time-limited access tokens on login.

It provides:
- User registration and login over a REST API
- Bcrypt password storage and JWT token issuance
- A sqlite-backed user store
- A CLI for user administration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/authgate/config.yml)")
}

// Services holds all initialized dependencies
type Services struct {
	DB          *sqlite.DB
	Logger      *zap.Logger
	UserRepo    repository.UserRepository
	AuthService *service.AuthService
}

func (s *Services) Close() {
	_ = s.Logger.Sync()
	_ = s.DB.Close()
}

// initServices initializes the store, logger, and auth pipeline
func initServices() (*Services, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.IsDevMode())
	if err != nil {
		return nil, err
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg)

	return &Services{
		DB:          db,
		Logger:      logger,
		UserRepo:    userRepo,
		AuthService: authService,
	}, nil
}
