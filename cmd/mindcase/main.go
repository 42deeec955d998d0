package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dilshanrad22/mind-case-backend/internal/profile"
	"github.com/Dilshanrad22/mind-case-backend/server"
	"github.com/Dilshanrad22/mind-case-backend/server/ai"
	"github.com/Dilshanrad22/mind-case-backend/store"
	"github.com/Dilshanrad22/mind-case-backend/store/db"
)

const (
	greetingBanner = `mindcase - your mental wellness companion backend`
)

var (
	version = "0.1.0"

	instanceProfile *profile.Profile

	rootCmd = &cobra.Command{
		Use:   "mindcase",
		Short: "A mental wellness companion service",
		Run: func(_ *cobra.Command, _ []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			dbDriver, err := db.NewDBDriver(instanceProfile)
			if err != nil {
				slog.Error("failed to create db driver", slog.Any("error", err))
				return
			}
			if err := dbDriver.Migrate(ctx); err != nil {
				slog.Error("failed to migrate database", slog.Any("error", err))
				return
			}

			storeInstance := store.New(dbDriver, instanceProfile)

			var gateway ai.CompletionGateway = ai.NewProvider(&ai.Config{
				BaseURL:   instanceProfile.AIBaseURL,
				APIKey:    instanceProfile.AIAPIKey,
				ChatModel: instanceProfile.AIChatModel,
				Timeout:   instanceProfile.AITimeout,
			})

			s, err := server.NewServer(ctx, instanceProfile, storeInstance, gateway)
			if err != nil {
				slog.Error("failed to create server", slog.Any("error", err))
				return
			}

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-c
				slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
				s.Shutdown(ctx)
				cancel()
			}()

			printGreetings()

			if err := s.Start(ctx); err != nil {
				slog.Error("failed to start server", slog.Any("error", err))
				cancel()
			}

			<-ctx.Done()
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8080)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("mindcase")
	viper.AutomaticEnv()

	cobra.OnInitialize(func() {
		instanceProfile = &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			slog.Error("invalid configuration", slog.Any("error", err))
			os.Exit(1)
		}
	})
}

func printGreetings() {
	fmt.Println(greetingBanner)
	fmt.Printf("version %s, mode %s, driver %s\n", instanceProfile.Version, instanceProfile.Mode, instanceProfile.Driver)
	fmt.Printf("listening on %s:%d\n", instanceProfile.Addr, instanceProfile.Port)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to run command", slog.Any("error", err))
		os.Exit(1)
	}
}
