package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/semarch/config"
	"github.com/c360studio/semarch/export"
	"github.com/c360studio/semarch/repository"
)

func exportCmd() *cobra.Command {
	var (
		format  string
		profile string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export <model-file>",
		Short: "Export an architecture model as RDF",
		Long: `Export loads an architecture model file and serializes it as RDF.

Formats: turtle, ntriples, jsonld. The ontology profile controls type
assertions: minimal emits EAM classes only, bfo adds Basic Formal
Ontology alignment.

Flag defaults come from the export section of semarch.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], format, profile, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Serialization format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Ontology profile (minimal, bfo)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func runExport(path, formatFlag, profileFlag, outputFlag string) error {
	semarchCfg, err := config.NewLoader(slog.Default()).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if formatFlag == "" {
		formatFlag = semarchCfg.Export.Format
	}
	if profileFlag == "" {
		profileFlag = semarchCfg.Export.Profile
	}
	if outputFlag == "" {
		outputFlag = semarchCfg.Export.Output
	}

	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	profile, err := export.ParseProfile(profileFlag)
	if err != nil {
		return err
	}

	doc, err := repository.LoadModelFile(path)
	if err != nil {
		return err
	}
	store, err := doc.BuildStore()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	exporter := export.NewRDFExporter(profile)
	rendered, err := exporter.ExportStore(store, format)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}

	if outputFlag == "" {
		fmt.Print(rendered)
		return nil
	}

	if err := os.WriteFile(outputFlag, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputFlag, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %s to %s\n", path, outputFlag)
	return nil
}
