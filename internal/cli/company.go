package cli

import (
	"context"
	"fmt"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/spf13/cobra"
)

var (
	companyName        string
	companyDescription string
	companyIndustry    string
	companyStage       string
	companyInfo        string
	companyProduct     string
	companyTech        string
	companyGTM         string
	companyDraft       bool
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage your startup profile",
	Long: `Show and edit the startup profile your AI executives use for
context.

Subcommands:
  init     Create or refresh the profile
  update   Update profile fields
  suggest  Preview an AI-drafted profile without saving

Examples:
  edge company
  edge company init --name "Acme" --description "Dev tools for robots" --draft
  edge company update --stage seed --industry robotics
  edge company suggest "Acme" "Dev tools for robots"`,
	Args: cobra.NoArgs,
	RunE: runCompanyShow,
}

var companyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or refresh the profile",
	Args:  cobra.NoArgs,
	RunE:  runCompanyInit,
}

var companyUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE:  runCompanyUpdate,
}

var companySuggestCmd = &cobra.Command{
	Use:   "suggest <name> [description]",
	Short: "Preview an AI-drafted profile without saving",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCompanySuggest,
}

func init() {
	companyInitCmd.Flags().StringVar(&companyName, "name", "", "company name (required)")
	companyInitCmd.Flags().StringVar(&companyDescription, "description", "", "one-line description")
	companyInitCmd.Flags().StringVar(&companyIndustry, "industry", "", "industry")
	companyInitCmd.Flags().StringVar(&companyStage, "stage", "", "funding stage")
	companyInitCmd.Flags().BoolVar(&companyDraft, "draft", false, "let the AI draft the narrative sections")
	companyInitCmd.MarkFlagRequired("name")

	companyUpdateCmd.Flags().StringVar(&companyName, "name", "", "company name")
	companyUpdateCmd.Flags().StringVar(&companyDescription, "description", "", "one-line description")
	companyUpdateCmd.Flags().StringVar(&companyIndustry, "industry", "", "industry")
	companyUpdateCmd.Flags().StringVar(&companyStage, "stage", "", "funding stage")
	companyUpdateCmd.Flags().StringVar(&companyInfo, "info", "", "company background")
	companyUpdateCmd.Flags().StringVar(&companyProduct, "product", "", "product overview")
	companyUpdateCmd.Flags().StringVar(&companyTech, "tech", "", "tech stack")
	companyUpdateCmd.Flags().StringVar(&companyGTM, "gtm", "", "go-to-market strategy")

	companyCmd.AddCommand(companyInitCmd)
	companyCmd.AddCommand(companyUpdateCmd)
	companyCmd.AddCommand(companySuggestCmd)
}

func printSection(title, body string) {
	if body == "" {
		return
	}
	fmt.Printf("\n%s:\n  %s\n", title, body)
}

func runCompanyShow(cmd *cobra.Command, args []string) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}

	company, err := api.GetCompanyByUser(context.Background(), sess.User.ID)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not load the profile"))
	}
	if company == nil {
		fmt.Println("No company profile yet. Create one with 'edge company init'.")
		return nil
	}

	fmt.Printf("%s", company.Name)
	if company.Stage != "" || company.Industry != "" {
		fmt.Printf(" (%s %s)", company.Stage, company.Industry)
	}
	fmt.Println()
	if company.Description != "" {
		fmt.Println(company.Description)
	}
	printSection("Background", company.CompanyInfo)
	printSection("Product", company.ProductOverview)
	printSection("Tech stack", company.TechStack)
	printSection("Go-to-market", company.GoToMarketStrategy)
	if len(company.CodebaseFiles) > 0 {
		fmt.Printf("\nLinked files: %d (see 'edge files')\n", len(company.CodebaseFiles))
	}
	return nil
}

func runCompanyInit(cmd *cobra.Command, args []string) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}
	ctx := context.Background()

	existing, err := api.GetCompanyByUser(ctx, sess.User.ID)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not check for an existing profile"))
	}

	var suggestion *models.CompanyProfileSuggestion
	if companyDraft {
		fmt.Println("Drafting the profile, this can take a moment...")
		suggestion, err = api.SuggestCompanyProfile(ctx, companyName, companyDescription)
		if err != nil {
			return fmt.Errorf("%s", client.Detail(err, "could not draft the profile"))
		}
	}

	// Idempotent per user: refresh the existing profile instead of failing.
	if existing != nil {
		update := models.CompanyUpdate{
			Name:        &companyName,
			Description: &companyDescription,
			Industry:    &companyIndustry,
			Stage:       &companyStage,
		}
		if suggestion != nil {
			update.CompanyInfo = &suggestion.CompanyInfo
			update.ProductOverview = &suggestion.ProductOverview
			update.TechStack = &suggestion.TechStack
			update.GoToMarketStrategy = &suggestion.GoToMarketStrategy
		}
		updated, err := api.UpdateCompany(ctx, existing.ID, update)
		if err != nil {
			return fmt.Errorf("%s", client.Detail(err, "could not update the profile"))
		}
		fmt.Printf("Refreshed the profile for %s.\n", updated.Name)
		return nil
	}

	create := models.CompanyCreate{
		UserID:      sess.User.ID,
		Name:        companyName,
		Description: companyDescription,
		Industry:    companyIndustry,
		Stage:       companyStage,
	}
	if suggestion != nil {
		create.CompanyInfo = suggestion.CompanyInfo
		create.ProductOverview = suggestion.ProductOverview
		create.TechStack = suggestion.TechStack
		create.GoToMarketStrategy = suggestion.GoToMarketStrategy
	}

	company, err := api.CreateCompany(ctx, create)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not create the profile"))
	}
	fmt.Printf("Created the profile for %s.\n", company.Name)
	return nil
}

func runCompanyUpdate(cmd *cobra.Command, args []string) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}
	ctx := context.Background()

	company, err := api.GetCompanyByUser(ctx, sess.User.ID)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not load the profile"))
	}
	if company == nil {
		return fmt.Errorf("no profile yet, create one with 'edge company init'")
	}

	var update models.CompanyUpdate
	set := func(dest **string, flag string, value *string) {
		if cmd.Flags().Changed(flag) {
			*dest = value
		}
	}
	set(&update.Name, "name", &companyName)
	set(&update.Description, "description", &companyDescription)
	set(&update.Industry, "industry", &companyIndustry)
	set(&update.Stage, "stage", &companyStage)
	set(&update.CompanyInfo, "info", &companyInfo)
	set(&update.ProductOverview, "product", &companyProduct)
	set(&update.TechStack, "tech", &companyTech)
	set(&update.GoToMarketStrategy, "gtm", &companyGTM)

	if update == (models.CompanyUpdate{}) {
		return fmt.Errorf("nothing to change: pass at least one field flag")
	}

	updated, err := api.UpdateCompany(ctx, company.ID, update)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not update the profile"))
	}
	fmt.Printf("Updated the profile for %s.\n", updated.Name)
	return nil
}

func runCompanySuggest(cmd *cobra.Command, args []string) error {
	name := args[0]
	description := ""
	if len(args) == 2 {
		description = args[1]
	}

	fmt.Println("Drafting, this can take a moment...")
	suggestion, err := api.SuggestCompanyProfile(context.Background(), name, description)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not draft the profile"))
	}

	printSection("Background", suggestion.CompanyInfo)
	printSection("Product", suggestion.ProductOverview)
	printSection("Tech stack", suggestion.TechStack)
	printSection("Go-to-market", suggestion.GoToMarketStrategy)
	fmt.Println("\nSave any of these with 'edge company update'.")
	return nil
}
