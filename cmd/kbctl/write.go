package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"formulakb/internal/extract"
	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/internal/views/pages"
)

// readSource returns the contents of path, or stdin for "-".
func (a *app) readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(io.LimitReader(a.stdin, extract.MaxUploadSize+1))
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > extract.MaxUploadSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, extract.MaxUploadSize)
	}
	return os.ReadFile(path)
}

func newAddFormulationCmd(a *app) *cobra.Command {
	var (
		in              kb.FormulationInput
		ingredientsFile string
	)
	cmd := &cobra.Command{
		Use:   "add-formulation",
		Short: "Append a formulation with its ingredient rows",
		Long: `Append a formulation, creating the brand and any unknown ingredients.

Ingredient rows are read from --ingredients (a file, or - for stdin), one per
line as: INCI | Common | Function | % | Phase | Notes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.NewBrandName != "" {
				in.NewBrand = true
			} else if strings.TrimSpace(in.Brand) == "" {
				return fmt.Errorf("either --brand or --new-brand is required")
			}
			if ingredientsFile != "" {
				data, err := a.readSource(ingredientsFile)
				if err != nil {
					return fmt.Errorf("read ingredients: %w", err)
				}
				in.Ingredients = string(data)
			}

			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			result, err := session.AddFormulation(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to save: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved formulation '%s' (id %d) with %d ingredient row(s).\n",
				result.Formulation.Name, result.Formulation.ID, len(result.Links))
			if result.BrandCreated {
				fmt.Fprintf(out, "Created brand %q (id %d).\n", result.Brand.Name, result.Brand.ID)
			}
			if len(result.CreatedIngredients) > 0 {
				names := make([]string, 0, len(result.CreatedIngredients))
				for _, ingredient := range result.CreatedIngredients {
					names = append(names, ingredient.INCIName)
				}
				fmt.Fprintf(out, "New ingredients: %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Formulation name")
	cmd.Flags().StringVar(&in.Category, "category", "Bodycare", "Category ("+strings.Join(pages.FormulationCategories, ", ")+")")
	cmd.Flags().StringVar(&in.ProductType, "product-type", "Body Wash", "Product type")
	cmd.Flags().StringVar(&in.Brand, "brand", "", "Existing brand name")
	cmd.Flags().StringVar(&in.NewBrandName, "new-brand", "", "Create a new brand with this name")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&ingredientsFile, "ingredients", "", "Ingredient rows file, or - for stdin")
	return cmd
}

func newAddINCICmd(a *app) *cobra.Command {
	var (
		in      kb.BulkInput
		noDedup bool
		file    string
	)
	cmd := &cobra.Command{
		Use:   "add-inci [name-list]...",
		Short: "Add INCI names to the Ingredients table",
		Long: `Add comma or newline separated INCI names to the Ingredients table with
auto ids. Names already present (case-insensitively) are skipped.

With --file the INCI section of a PDF or text document is used as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Raw = strings.Join(args, "\n")
			in.Dedup = !noDedup
			if file != "" {
				data, err := a.readSource(file)
				if err != nil {
					return fmt.Errorf("read document: %w", err)
				}
				mime := extract.MimeTypeFromName(file)
				if file == "-" {
					mime = "text/plain"
				}
				text, err := extract.Text(data, mime)
				if err != nil {
					return fmt.Errorf("extract text: %w", err)
				}
				if section := extract.INCISection(text); section != "" {
					in.Raw += "\n" + section
				}
			}

			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			result, err := session.BulkAddIngredients(cmd.Context(), in)
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, kb.ErrNoTokens):
				printNote(out, "No INCI names detected.")
				return nil
			case err != nil:
				return fmt.Errorf("failed to add ingredients: %w", err)
			case result.NothingAdded():
				fmt.Fprintln(out, "Added 0 ingredient(s).")
				printNote(out, "Nothing new to add. Everything already existed or input was empty.")
				return nil
			}
			applog.Debug(cmd.Context(), "ingredients added", "count", len(result.Added))
			fmt.Fprintf(out, "Added %d ingredient(s).\n", len(result.Added))
			rows := make([][]string, 0, len(result.Added))
			for _, ingredient := range result.Added {
				rows = append(rows, []string{pages.FormatID(ingredient.ID), ingredient.INCIName, ingredient.CommonName, ingredient.Function})
			}
			printTable(out, []string{"id", "inci_name", "common_name", "function"}, rows, "")
			return nil
		},
	}
	cmd.Flags().BoolVar(&noDedup, "no-dedup", false, "Keep repeated names from the list")
	cmd.Flags().StringVar(&in.DefaultFunction, "function", "", "Default function for new rows")
	cmd.Flags().StringVar(&in.DefaultCommonName, "common-name", "", "Default common name for new rows")
	cmd.Flags().StringVar(&file, "file", "", "PDF or text document with an INCI section, or - for stdin")
	return cmd
}
