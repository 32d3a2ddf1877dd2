package main

import (
	"os"

	"github.com/spf13/cobra"

	askcmder "github.com/ubique/stylist/cmd/stylist/ask"
	servecmder "github.com/ubique/stylist/cmd/stylist/serve"
	"github.com/ubique/stylist/pkg/stylist"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stylist",
		Short:         "Outfit advice from a multimodal chat model",
		Version:       stylist.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(askcmder.NewAskCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
