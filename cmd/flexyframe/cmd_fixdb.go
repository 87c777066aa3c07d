package main

import (
	"fmt"

	"flexyframe/internal/config"
	"flexyframe/internal/domain/model"
	"flexyframe/internal/infra/db"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// flexyframe fixdb — 旧スキーマのordersにtoken列を足す
var fixDBCmd = &cobra.Command{
	Use:   "fixdb",
	Short: "Add missing columns to an existing database",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		gormDB, err := db.Connect(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}

		m := gormDB.Migrator()
		if m.HasColumn(&model.Order{}, "token") {
			fmt.Println("orders.token already exists, nothing to do")
			return nil
		}

		if err := m.AddColumn(&model.Order{}, "Token"); err != nil {
			return err
		}
		fmt.Println("added orders.token")
		return nil
	},
}
