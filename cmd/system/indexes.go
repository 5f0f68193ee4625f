package system

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vrushti/clinic_backend/config"
	"github.com/vrushti/clinic_backend/internal/store"
	"github.com/vrushti/clinic_backend/pkg/mongodb"
)

func NewIndexesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes the server depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			client, err := mongodb.Connect(cfg.Mongo)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			defer client.Disconnect(ctx)

			st := store.New(mongodb.Database(client, cfg.Mongo))
			if err := st.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("failed to create indexes: %w", err)
			}

			fmt.Println("Indexes created successfully.")
			return nil
		},
	}

	return cmd
}
