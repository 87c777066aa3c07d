package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flexyframe",
	Short: "FlexyFrame — Telegram-магазин картин",
	Long:  "FlexyFrame запускает Telegram-бота и HTTP API магазина картин.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fixDBCmd)
}
