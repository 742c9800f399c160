package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func MasterCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "master",
		Short: "Show the option lists used by property forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded := env.Properties.MasterData(cmd.Context())
			env.banner(loaded.Banner)
			fmt.Fprintf(env.Out, "Property types:  %s\n", strings.Join(loaded.Data.PropertyType, ", "))
			fmt.Fprintf(env.Out, "Energy ratings:  %s\n", strings.Join(loaded.Data.EnergyRatings, ", "))
			fmt.Fprintf(env.Out, "Locations:       %s\n", strings.Join(loaded.Data.Locations, ", "))
			fmt.Fprintf(env.Out, "Amenities:       %s\n", strings.Join(loaded.Data.Amenities, ", "))
			return nil
		},
	}
}
