package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"spacia-portal/internal/listing"
	"spacia-portal/internal/models"
	"spacia-portal/internal/submission"

	"github.com/spf13/cobra"
)

func PropertiesCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"property", "p"},
		Short:   "Browse and manage listings",
	}
	cmd.AddCommand(
		listCmd(env),
		showCmd(env),
		mineCmd(env),
		createCmd(env),
		editCmd(env),
		updateCmd(env),
		deleteCmd(env),
		contactCmd(env),
	)
	return cmd
}

func printProperties(w io.Writer, properties []models.Property) {
	if len(properties) == 0 {
		fmt.Fprintln(w, "No properties found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tLOCATION\tRENT\tBEDS\tAVAILABLE")
	for _, p := range properties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%d\t%s\n",
			p.ID, p.Name, p.PropertyType, p.PostalCode, p.Rent, p.Bedrooms, p.AvailableFrom)
	}
	_ = tw.Flush()
}

func printProperty(w io.Writer, p *models.Property) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "  %s, %s %s\n", p.Address, p.PostalCode, p.Eircode)
	fmt.Fprintf(w, "  %s, %d bed, %d bath, %.0f m2, energy %s\n", p.PropertyType, p.Bedrooms, p.Bathrooms, p.Area, p.EnergyRatings)
	fmt.Fprintf(w, "  Rent %.2f, deposit %.2f, available from %s\n", p.Rent, p.Deposit, p.AvailableFrom)
	if len(p.Amenities) > 0 {
		fmt.Fprintf(w, "  Amenities: %s\n", strings.Join(p.Amenities, ", "))
	}
	for _, img := range p.Images {
		fmt.Fprintf(w, "  Image: %s\n", img)
	}
	fmt.Fprintf(w, "\n%s\n", p.Description)
}

func listCmd(env *Env) *cobra.Command {
	var filter listing.Filter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every property, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := env.Properties.List(cmd.Context(), filter)
			if err != nil {
				return userError(err)
			}
			printProperties(env.Out, view.Properties)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter.Location, "location", "l", "", "postal code contains (case-insensitive)")
	cmd.Flags().StringVarP(&filter.PropertyType, "type", "t", "", "exact property type (case-insensitive)")
	return cmd
}

// showCmd finds the record in the list and hands it to the detail view, the way the browser does.
func showCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := env.Properties.List(cmd.Context(), listing.Filter{})
			if err != nil {
				return userError(err)
			}
			var state models.NavigationState
			for i := range view.Properties {
				if view.Properties[i].ID == args[0] {
					state.Property = &view.Properties[i]
					break
				}
			}
			property, err := env.Properties.Detail(state)
			if err != nil {
				return userError(err)
			}
			printProperty(env.Out, property)
			return nil
		},
	}
}

func mineCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.RequireCurrent(cmd.Context())
			if err != nil {
				return err
			}
			view, err := env.Properties.Mine(cmd.Context(), sess)
			if err != nil {
				return userError(err)
			}
			printProperties(env.Out, view.Properties())
			return nil
		},
	}
}

func submissionHooks(env *Env) []submission.Option {
	return []submission.Option{
		submission.WithTransitionHook(func(from, to submission.State) {
			fmt.Fprintf(env.Out, "%s -> %s\n", from, to)
		}),
		submission.WithProgressHook(func(progress float64) {
			fmt.Fprintf(env.Out, "  uploaded %3.0f%%\n", progress*100)
		}),
	}
}

func reportSubmission(env *Env, result submission.Result, err error) error {
	for _, u := range result.Uploads {
		line := fmt.Sprintf("  %-8s %s", u.Outcome, u.Name)
		if u.Reason != "" {
			line += ": " + u.Reason
		}
		fmt.Fprintln(env.Out, line)
	}
	if err != nil {
		if result.PropertyID != "" {
			fmt.Fprintf(env.Out, "Property %s was saved\n", result.PropertyID)
		}
		return userError(err)
	}
	return nil
}

func createCmd(env *Env) *cobra.Command {
	var (
		draftPath string
		images    []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a property from a YAML draft and upload its images in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.RequireCurrent(cmd.Context())
			if err != nil {
				return err
			}
			draft, err := LoadDraft(draftPath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			selector := env.Properties.Selector()
			files := make([]models.PendingFile, 0, len(images))
			for _, path := range images {
				file, err := selector.FromPath(path)
				if err != nil {
					return err
				}
				files = append(files, file)
			}

			result, err := env.Properties.Create(cmd.Context(), sess, draft, files, submissionHooks(env)...)
			if err := reportSubmission(env, result, err); err != nil {
				return err
			}
			env.success("Property %s added", result.PropertyID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&draftPath, "file", "f", "", "draft file, - for stdin")
	cmd.Flags().StringArrayVarP(&images, "image", "i", nil, "image to upload, repeatable, sent in the given order")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func editCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Print a property as a draft to change and pass to update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.RequireCurrent(cmd.Context())
			if err != nil {
				return err
			}
			view, err := env.Properties.EditView(cmd.Context(), sess, args[0], nil)
			if err != nil {
				return userError(err)
			}
			return WriteDraft(env.Out, view.Draft)
		},
	}
}

func updateCmd(env *Env) *cobra.Command {
	var draftPath string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a property with a YAML draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.RequireCurrent(cmd.Context())
			if err != nil {
				return err
			}
			draft, err := LoadDraft(draftPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			result, err := env.Properties.Update(cmd.Context(), sess, args[0], draft, submissionHooks(env)...)
			if err := reportSubmission(env, result, err); err != nil {
				return err
			}
			env.success("Property %s updated", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&draftPath, "file", "f", "", "draft file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func deleteCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.RequireCurrent(cmd.Context())
			if err != nil {
				return err
			}
			if err := env.Properties.Delete(cmd.Context(), sess, args[0]); err != nil {
				return userError(err)
			}
			env.success("Property %s deleted", args[0])
			return nil
		},
	}
}

func contactCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "contact <id>",
		Short: "Ask the owner of a property to get in touch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.Current(cmd.Context())
			if err != nil {
				return err
			}
			result, err := env.Properties.Contact(cmd.Context(), sess, args[0])
			if err != nil {
				return userError(err)
			}
			if result.Redirect != "" {
				return fmt.Errorf("please log in to contact the owner. Run: spaciactl login")
			}
			env.success("%s", result.Message)
			return nil
		},
	}
}
