package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenlyhq/seenly/internal/auth"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage API keys",
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API key for a workspace",
	RunE:  runAPIKeyCreate,
}

var (
	apikeyWorkspace string
	apikeyName      string
	apikeyDays      int
)

func init() {
	apikeyCreateCmd.Flags().StringVar(&apikeyWorkspace, "workspace", "", "Workspace ID the key is scoped to (required)")
	apikeyCreateCmd.Flags().StringVar(&apikeyName, "name", "", "Name/description for the key (required)")
	apikeyCreateCmd.Flags().IntVar(&apikeyDays, "days", 0, "Days until expiration (0 = never expires)")
	apikeyCreateCmd.MarkFlagRequired("workspace")
	apikeyCreateCmd.MarkFlagRequired("name")

	apikeyCmd.AddCommand(apikeyCreateCmd)
}

func runAPIKeyCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var expiresAt *time.Time
	if apikeyDays > 0 {
		expiry := time.Now().UTC().AddDate(0, 0, apikeyDays)
		expiresAt = &expiry
	}

	key, err := auth.CreateAPIKey(ctx, store, apikeyWorkspace, apikeyName, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}

	fmt.Println("API key created.")
	fmt.Printf("  Workspace: %s\n", apikeyWorkspace)
	fmt.Printf("  Name:      %s\n", apikeyName)
	if expiresAt != nil {
		fmt.Printf("  Expires:   %s\n", expiresAt.Format(time.RFC3339))
	} else {
		fmt.Println("  Expires:   never")
	}
	fmt.Printf("\n%s\n\n", key)
	fmt.Println("Save this key now; it will not be shown again.")
	return nil
}
