package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sitecms-backend-go/internal/ai"
	"sitecms-backend-go/internal/config"
	"sitecms-backend-go/internal/db"
	httpapi "sitecms-backend-go/internal/http"
	"sitecms-backend-go/internal/migrations"
	"sitecms-backend-go/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "sitecms",
	Short: "site content API",
	Example: `sitecms serve
sitecms migrate
sitecms seed
sitecms admin create --email owner@example.com
sitecms admin hash-password`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadWithoutSecrets()
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		applied, err := migrations.Applied(database)
		if err != nil {
			return err
		}
		fmt.Printf("%d migrations applied\n", len(applied))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "load the built-in fixtures into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadWithoutSecrets()
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		fixtures, err := services.DefaultFixtures()
		if err != nil {
			return err
		}
		seeder := services.NewSeeder(db.NewGateway(database), nil, fixtures, cfg.ProjectDefaultLocation)
		counts, err := seeder.Seed(cmd.Context())
		if err != nil {
			return err
		}
		for table, n := range counts {
			fmt.Printf("%-14s %d\n", table, n)
		}
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "manage admin accounts",
}

var adminEmail string

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "create an admin or reset its password",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword()
		if err != nil {
			return err
		}
		cfg := config.LoadWithoutSecrets()
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		admins := services.NewAdminStore(db.NewGateway(database), services.TokenService{})
		admin, err := admins.Upsert(cmd.Context(), adminEmail, password, "")
		if err != nil {
			return err
		}
		fmt.Printf("admin %s saved\n", admin.Email)
		return nil
	},
}

var adminHashCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "print an argon2id hash for ADMIN_PASSWORD_HASH",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword()
		if err != nil {
			return err
		}
		hash, err := services.TokenService{}.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	_ = adminCreateCmd.MarkFlagRequired("email")
	adminCmd.AddCommand(adminCreateCmd, adminHashCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, adminCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// openDatabase connects and brings the schema up to date.
func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	database, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if err := migrations.Apply(database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return database, nil
}

func promptPassword() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	password, err := line.PasswordPrompt("Password: ")
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	confirm, err := line.PasswordPrompt("Confirm password: ")
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

func runServe(parent context.Context) error {
	cfg := config.Load()

	cleanupLogs, err := setupLogger(cfg)
	if err != nil {
		logrus.WithError(err).Warn("logger setup failed")
	} else {
		defer cleanupLogs()
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	fixtures, err := services.DefaultFixtures()
	if err != nil {
		return err
	}
	opts := httpapi.Options{Fixtures: fixtures}
	if cfg.GeminiAPIKey != "" {
		model, err := ai.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
		if err != nil {
			return err
		}
		opts.Model = model
	} else {
		logrus.Warn("GEMINI_API_KEY not set; AI endpoints are disabled")
	}
	if cfg.CloudinaryEnabled() {
		cdn, err := services.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret, cfg.CloudinaryFolderPrefix)
		if err != nil {
			return err
		}
		opts.Uploader = cdn
		opts.Signer = cdn
	} else {
		logrus.WithField("path", cfg.MediaStoragePath).Info("Cloudinary not configured; storing media locally")
	}

	hub := services.NewEventHub()
	go hub.Run(ctx)

	server := httpapi.NewServer(db.NewGateway(database), cfg, hub, opts)
	go server.Limiter.Run(ctx)

	created, err := server.Admins.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		logrus.WithField("email", cfg.AdminEmail).Info("created bootstrap admin")
	}

	addr := ":" + cfg.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}
	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	logrus.Info("shutdown complete")
	return nil
}
