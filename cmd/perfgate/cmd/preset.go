package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/perfgate/perfgate/pkg/logger"
	"github.com/perfgate/perfgate/pkg/preset"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved configuration presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	RunE:  listPresets,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Fill in the form and save the result as a preset",
	RunE:  savePreset,
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a saved preset",
	Args:  cobra.MaximumNArgs(1),
	RunE:  deletePreset,
}

var presetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all presets to a file",
	RunE:  exportPresets,
}

var presetImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import presets from an export file",
	Args:  cobra.ExactArgs(1),
	RunE:  importPresets,
}

func init() {
	presetExportCmd.Flags().StringP("output", "o", "presets.json", "export file path")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	presetCmd.AddCommand(presetExportCmd)
	presetCmd.AddCommand(presetImportCmd)
}

func listPresets(cmd *cobra.Command, _ []string) error {
	store, err := presetStore()
	if err != nil {
		return err
	}

	presets, err := store.List()
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Println("No presets saved")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSCENARIO\tPROFILE\tENVIRONMENT\tCREATED")
	_, _ = fmt.Fprintln(w, "----\t--------\t-------\t-----------\t-------")

	for _, p := range presets {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name,
			p.Config.Selections.Scenario,
			p.Config.Selections.LoadType,
			p.Config.Selections.Environment,
			p.Created.Local().Format("2006-01-02 15:04"),
		)
	}

	return w.Flush()
}

func savePreset(cmd *cobra.Command, _ []string) error {
	in, _, err := gatherInput(context.Background(), "")
	if err != nil {
		return err
	}

	var name string
	namePrompt := &survey.Input{Message: "Preset name:"}
	if err := survey.AskOne(namePrompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var description string
	descPrompt := &survey.Input{Message: "Description (optional):"}
	if err := survey.AskOne(descPrompt, &description); err != nil {
		return err
	}

	store, err := presetStore()
	if err != nil {
		return err
	}

	p, err := store.Save(name, description, "", preset.Config{
		Selections:   in.Selections,
		LoadData:     in.LoadData,
		ScenarioData: in.ScenarioData,
	})
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}

	logger.Successf("Preset %s saved", p.Name)
	return nil
}

func deletePreset(cmd *cobra.Command, args []string) error {
	store, err := presetStore()
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		presets, err := store.List()
		if err != nil {
			return err
		}
		if len(presets) == 0 {
			fmt.Println("No presets to delete")
			return nil
		}
		names := make([]string, len(presets))
		for i, p := range presets {
			names[i] = p.Name
		}
		prompt := &survey.Select{
			Message: "Select preset to delete:",
			Options: names,
		}
		if err := survey.AskOne(prompt, &name); err != nil {
			return err
		}
	}

	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to delete %s?", name),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}
	if !confirm {
		fmt.Println("Deletion cancelled")
		return nil
	}

	if err := store.Delete(name); err != nil {
		return err
	}
	logger.Successf("Preset %s deleted", name)
	return nil
}

func exportPresets(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")

	store, err := presetStore()
	if err != nil {
		return err
	}

	data, err := store.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	logger.Successf("Presets exported to %s", output)
	return nil
}

func importPresets(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	store, err := presetStore()
	if err != nil {
		return err
	}

	count, err := store.Import(data)
	if err != nil {
		return err
	}
	logger.Successf("Imported %d presets", count)
	return nil
}
