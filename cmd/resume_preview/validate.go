package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/observability"
	"github.com/jonathan/resume-preview/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate template schema and resume data files",
	Long: `Validates files against the embedded JSON Schemas and the structural rules of
the layout engine. At least one of --schema or --data is required.

--file with --json-schema validates any JSON file against a JSON Schema file,
resolved relative to the working directory or the repository root.`,
	RunE: runValidate,
}

var (
	validateSchemaPath string
	validateDataPath   string
	validateFilePath   string
	validateJSONSchema string
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "Path to a template schema JSON file")
	validateCmd.Flags().StringVarP(&validateDataPath, "data", "d", "", "Path to a resume data JSON file")
	validateCmd.Flags().StringVar(&validateFilePath, "file", "", "Path to any JSON file (requires --json-schema)")
	validateCmd.Flags().StringVar(&validateJSONSchema, "json-schema", "", "JSON Schema file to validate --file against")

	validateCmd.MarkFlagsRequiredTogether("file", "json-schema")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateSchemaPath == "" && validateDataPath == "" && validateFilePath == "" {
		return fmt.Errorf("at least one of --schema or --data is required")
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	failed := 0

	if validateSchemaPath != "" {
		err := validateSchemaFile(validateSchemaPath)
		printer.PrintValidation(validateSchemaPath, err)
		if err != nil {
			failed++
		}
	}
	if validateDataPath != "" {
		err := validateDataFile(validateDataPath)
		printer.PrintValidation(validateDataPath, err)
		if err != nil {
			failed++
		}
	}

	if validateFilePath != "" {
		err := validateAgainst(validateJSONSchema, validateFilePath)
		printer.PrintValidation(validateFilePath, err)
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func validateSchemaFile(path string) error {
	schema, err := schemas.LoadTemplateSchema(path)
	if err != nil {
		return err
	}
	return schema.Validate()
}

func validateDataFile(path string) error {
	data, err := schemas.LoadResumeData(path)
	if err != nil {
		return err
	}
	return data.Validate()
}

func validateAgainst(schemaPath, path string) error {
	resolved := schemas.ResolveSchemaPath(schemaPath)
	if resolved == "" {
		return fmt.Errorf("json schema not found: %s", schemaPath)
	}
	return schemas.ValidateJSON(resolved, path)
}
