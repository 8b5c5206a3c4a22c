package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/seenlyhq/seenly/internal/domain"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspaces",
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceCreate,
}

func init() {
	workspaceCmd.AddCommand(workspaceCreateCmd)
}

func runWorkspaceCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, err := domain.NewName(args[0])
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate workspace ID: %w", err)
	}

	workspace := &domain.Workspace{
		ID:        id.String(),
		Name:      name.String(),
		CreatedAt: time.Now().UTC(),
	}
	if err := store.CreateWorkspace(ctx, workspace); err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	fmt.Printf("Workspace created.\n")
	fmt.Printf("  ID:   %s\n", workspace.ID)
	fmt.Printf("  Name: %s\n", workspace.Name)
	return nil
}
