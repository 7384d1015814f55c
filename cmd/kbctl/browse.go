package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"formulakb/internal/catalog"
	"formulakb/internal/kb"
	"formulakb/internal/recommend"
	"formulakb/internal/views/pages"
)

func addFilterFlags(cmd *cobra.Command, f *kb.Filter, withBrand bool) {
	cmd.Flags().StringVar(&f.Category, "category", "", "Category to match (default all)")
	cmd.Flags().StringVar(&f.ProductType, "product-type", "", "Product type to match (default all)")
	if withBrand {
		cmd.Flags().StringVar(&f.Brand, "brand", "", "Brand name to match (default all)")
	}
}

func newFormulationsCmd(a *app) *cobra.Command {
	var filter kb.Filter
	cmd := &cobra.Command{
		Use:   "formulations",
		Short: "List formulations matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			rows := session.FilterFormulations(filter)
			cells := make([][]string, 0, len(rows))
			for _, row := range rows {
				cells = append(cells, []string{pages.FormatID(row.ID), row.Name, row.Brand, row.Category, row.ProductType, pages.DefaultDash(row.Notes)})
			}
			out := cmd.OutOrStdout()
			printTitle(out, "Formulations")
			printTable(out, []string{"id", "name", "brand", "category", "product_type", "notes"}, cells, "No formulations match the filters.")
			return nil
		},
	}
	addFilterFlags(cmd, &filter, true)
	return cmd
}

func newDetailsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "details <formulation-id>...",
		Short: "Show the ingredient rows of formulations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid formulation id %q", arg)
				}
				ids = append(ids, id)
			}
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, detail := range session.Details(ids) {
				title := "Ingredients · Formulation ID " + strconv.FormatInt(detail.FormulationID, 10)
				if detail.Name != "" {
					title += " (" + detail.Name + ")"
				}
				printTitle(out, title)
				rows := make([][]string, 0, len(detail.Lines))
				for _, line := range detail.Lines {
					rows = append(rows, []string{line.INCI, line.CommonName, line.Function, line.Percentage, line.Phase, line.Notes})
				}
				printTable(out, []string{"INCI", "Common", "Function", "Percent", "Phase", "Notes"}, rows, "No ingredient rows recorded.")
			}
			return nil
		},
	}
}

func newFrequencyCmd(a *app) *cobra.Command {
	var filter kb.Filter
	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Count ingredient usage across formulations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			freq := session.Frequency(filter)
			rows := make([][]string, 0, len(freq))
			for _, f := range freq {
				rows = append(rows, []string{f.INCI, f.CommonName, f.Function, strconv.Itoa(f.Count)})
			}
			out := cmd.OutOrStdout()
			printTitle(out, "Ingredient Frequency")
			printTable(out, []string{"INCI", "Common", "Function", "Count"}, rows, "No ingredient usage within the filters.")
			return nil
		},
	}
	addFilterFlags(cmd, &filter, false)
	return cmd
}

func newStructureCmd(a *app) *cobra.Command {
	var filter kb.Filter
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Show the typical base structure for a category and product type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			filter = filter.Normalized()
			key := catalog.StructureKey(filter.Category, filter.ProductType)
			rules, ok := catalog.Lookup(key.Category, key.ProductType)
			if !ok {
				printNote(out, catalog.NoRulesMessage)
				return nil
			}
			printTitle(out, "Base Structure (guideline) · "+key.Category+" / "+key.ProductType)
			rows := make([][]string, 0, len(rules.BaseStructure))
			for _, row := range rules.BaseStructure {
				rows = append(rows, []string{row.Component, row.Function, row.TypicalRange})
			}
			printTable(out, []string{"Component", "Function", "Typical Range"}, rows, "")
			return nil
		},
	}
	addFilterFlags(cmd, &filter, false)
	return cmd
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		target string
		prefs  recommend.Preferences
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank surfactant systems for a product type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			systems, ok := catalog.SystemsFor(target)
			if !ok {
				printNote(out, catalog.RecommenderUnavailableMessage)
				return nil
			}
			printTitle(out, "Recommended Surfactant Systems · "+target)
			for _, ranked := range recommend.Rank(systems, prefs) {
				fmt.Fprintf(out, "%s (score %d)\n", pages.SystemLabel(ranked.System.Name, ranked.System.Tags), ranked.Score)
				rows := make([][]string, 0, len(ranked.System.Combo))
				for _, entry := range ranked.System.Combo {
					rows = append(rows, []string{entry.INCI, entry.Role, entry.Range})
				}
				printTable(out, []string{"INCI", "Role", "Range"}, rows, "")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", catalog.DefaultProductType, "Target product type")
	cmd.Flags().BoolVar(&prefs.SulfateFree, "sulfate-free", true, "Prefer sulfate-free systems")
	cmd.Flags().BoolVar(&prefs.Mild, "mild", true, "Prioritize mildness")
	cmd.Flags().BoolVar(&prefs.HighFoam, "high-foam", false, "Prefer high foam")
	return cmd
}
