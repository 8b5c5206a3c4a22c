package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seenlyhq/seenly/internal/service"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage answer-engine prompts",
}

var promptSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a workspace with the default prompt set",
	RunE:  runPromptSeed,
}

var promptSeedWorkspace string

// Starter prompts a new workspace gets for each supported answer engine.
var defaultPrompts = []struct {
	text   string
	engine string
}{
	{"What are the best tools for {category}?", "chatgpt"},
	{"Compare {brand} with its main competitors", "chatgpt"},
	{"What are the best tools for {category}?", "perplexity"},
	{"Is {brand} worth it in 2026?", "perplexity"},
	{"What are the best tools for {category}?", "gemini"},
}

func init() {
	promptSeedCmd.Flags().StringVar(&promptSeedWorkspace, "workspace", "", "Workspace ID to seed (required)")
	promptSeedCmd.MarkFlagRequired("workspace")

	promptCmd.AddCommand(promptSeedCmd)
}

func runPromptSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := service.New(store, 50, 200)

	for _, p := range defaultPrompts {
		prompt, err := svc.CreatePrompt(ctx, promptSeedWorkspace, p.text, p.engine)
		if err != nil {
			return fmt.Errorf("failed to seed prompt %q (%s): %w", p.text, p.engine, err)
		}
		fmt.Printf("  seeded %s  [%s] %s\n", prompt.ID, prompt.Engine, prompt.Text)
	}

	fmt.Printf("Seeded %d prompts for workspace %s.\n", len(defaultPrompts), promptSeedWorkspace)
	return nil
}
