package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-layout/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <resume.json>...",
	Short: "Validate résumé documents against the document schema",
	Long:  "Validates each file against the embedded résumé document schema, or against --schema when given. Every file is checked; the command fails if any file is invalid. --print-schema writes the embedded schema instead.",
	Args: func(cmd *cobra.Command, args []string) error {
		if validatePrintSchema {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runValidate,
}

var (
	validateSchema      string
	validatePrintSchema bool
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON schema (default: embedded résumé document schema)")
	validateCmd.Flags().BoolVar(&validatePrintSchema, "print-schema", false, "Print the embedded résumé document schema and exit")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd, nil); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if validatePrintSchema {
		_, err := out.Write(schemas.DocumentSchema())
		return err
	}

	failed := 0
	for _, path := range args {
		var err error
		if validateSchema != "" {
			err = schemas.ValidateJSON(validateSchema, path)
		} else {
			err = schemas.ValidateDocumentFile(path)
		}

		var validationErr *schemas.ValidationError
		switch {
		case err == nil:
			_, _ = fmt.Fprintf(out, "Validation passed: %s\n", path)
		case errors.As(err, &validationErr):
			failed++
			_, _ = fmt.Fprintf(out, "Validation failed: %s\n", path)
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
			}
		default:
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed validation", failed, len(args))
	}
	return nil
}
