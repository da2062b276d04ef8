package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perfgate/perfgate/pkg/codec"
	"github.com/perfgate/perfgate/pkg/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a test configuration",
	Long:  `Generate a test configuration interactively or from a preset, in any supported output format`,
	RunE:  runGenerate,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported output formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range codec.DefaultRegistry.List() {
			fmt.Println(name)
		}
	},
}

func init() {
	generateCmd.Flags().StringP("format", "f", "json", "output format (json, env, hocon, properties)")
	generateCmd.Flags().StringP("preset", "p", "", "generate from a saved preset instead of the form")
	generateCmd.Flags().StringP("output", "o", "", "write the configuration to a file instead of stdout")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	presetName, _ := cmd.Flags().GetString("preset")
	output, _ := cmd.Flags().GetString("output")

	c, err := codec.DefaultRegistry.Get(format)
	if err != nil {
		return err
	}

	in, ref, err := gatherInput(context.Background(), presetName)
	if err != nil {
		return err
	}

	doc, err := buildDocument(in, ref)
	if err != nil {
		return err
	}

	text, err := c.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Successf("Wrote %s configuration to %s", format, output)
		return nil
	}

	fmt.Print(text)
	return nil
}
