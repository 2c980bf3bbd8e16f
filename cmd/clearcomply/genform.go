package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/config"
	"github.com/xxracer/clearcomply2.1/internal/formgen"
	"github.com/xxracer/clearcomply2.1/internal/logger"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

var (
	genformPrompt string
	genformOutput string
)

var genformCmd = &cobra.Command{
	Use:   "genform",
	Short: "Generate an application-form structure from a prompt",
	Long:  `Generate a structured application form from a free-text description, without starting the server. Prints the validated form JSON to stdout or a file.`,
	RunE:  runGenform,
}

func init() {
	genformCmd.Flags().StringVarP(&genformPrompt, "prompt", "p", "", "Description of the form to generate (required)")
	genformCmd.Flags().StringVarP(&genformOutput, "output", "o", "", "Write the form JSON to this file instead of stdout")
	_ = genformCmd.MarkFlagRequired("prompt")
	rootCmd.AddCommand(genformCmd)
}

func runGenform(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync() //nolint:errcheck

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	form, err := formgen.New(client, log).GenerateFromPrompt(ctx, types.GenerateFormRequest{
		Prompt: genformPrompt,
	})
	if err != nil {
		return fmt.Errorf("form generation failed: %w", err)
	}

	out, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return err
	}

	if genformOutput != "" {
		if err := os.WriteFile(genformOutput, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", genformOutput, err)
		}
		log.Info("form written", zap.String("path", genformOutput), zap.Int("fields", len(form.Fields)))
		return nil
	}

	fmt.Println(string(out))
	return nil
}
