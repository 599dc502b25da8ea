package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/kianvosoft/site-backend/admin"
	"github.com/kianvosoft/site-backend/api"
	"github.com/kianvosoft/site-backend/config"
	"github.com/kianvosoft/site-backend/database"
	"github.com/kianvosoft/site-backend/models"
	"github.com/kianvosoft/site-backend/seed"
	"github.com/kianvosoft/site-backend/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "kianvosoft",
		Short:        "KianvoSoft marketing site and content admin",
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newGenerateCmd(),
		newSchemaReportCmd(),
	)
	return root
}

// loadConfig reads .env, the process environment and, when configured, SSM.
func loadConfig(ctx context.Context) (map[string]string, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	setupLogging(cfg)

	if err := config.LoadSSM(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(cfg, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(cfg, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// openDatabase connects and brings the schema up to date.
func openDatabase(cfg map[string]string) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Initializing app...")
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			currentDB := database.New(db)

			media, err := services.NewMediaResolverFromConfig(ctx, cfg)
			if err != nil {
				return err
			}
			site := services.NewSite(currentDB,
				services.WithMedia(media),
				services.WithNotifier(services.NewStaffNotifierFromConfig(cfg)),
			)

			adminSite, err := admin.NewSite(currentDB)
			if err != nil {
				return err
			}

			server, err := api.NewServer(cfg, currentDB, site, adminSite)
			if err != nil {
				return fmt.Errorf("initialize server: %w", err)
			}

			errChannel := make(chan error)
			go server.Start(errChannel)

			// Listen for interrupt signals to gracefully shutdown the server
			go listenToInterrupt(errChannel)

			fatalErr := <-errChannel
			fmt.Printf("Closing server: %v\n", fatalErr)

			server.ShutdownGracefully(30 * time.Second)
			site.Wait()
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}

			version, dirty, err := database.MigrationVersion(db)
			if err != nil {
				return err
			}
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema is up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var refreshBlog bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with the initial KianvoSoft catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}

			data, err := seed.DefaultData()
			if err != nil {
				return err
			}
			res, err := seed.New(database.New(db), data).Run(ctx, seed.Options{RefreshBlog: refreshBlog})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %d project categories\n", res.ProjectCategories)
			fmt.Fprintf(out, "Created %d projects\n", res.Projects)
			fmt.Fprintf(out, "Created %d services\n", res.Services)
			fmt.Fprintf(out, "Created %d company statistics\n", res.CompanyStats)
			fmt.Fprintf(out, "Created %d blog categories\n", res.BlogCategories)
			fmt.Fprintf(out, "Created %d blog posts\n", res.BlogPosts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refreshBlog, "refresh-blog", false, "delete existing blog posts and re-seed them")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate typed query helpers from the models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}

			fmt.Println("Generating models and query helpers...")
			models.GenerateModels(db, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "./query", "output directory for generated code")
	return cmd
}

func newSchemaReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema-report",
		Short: "Compare database columns against model fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}

			fmt.Println("Generating column mismatch report...")
			mismatches := models.PrintColumnMismatchReport(cmd.OutOrStdout(), models.ColumnMismatchReport(db))
			if mismatches > 0 {
				return fmt.Errorf("%d columns are not mapped by the models", mismatches)
			}
			return nil
		},
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
