package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BioHaZard1/Rashr/internal/catalog"
	"github.com/BioHaZard1/Rashr/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [flavor]",
	Short: "List compatible recovery or kernel images",
	Long: `List the images of the catalogs that fit this device, newest first.

Flavors: stock, cwm, twrp, philz. Without a flavor every bucket is printed.

Examples:
  rashr catalog twrp
  rashr catalog --kernel
  rashr catalog -o json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCatalog,
}

func init() {
	catalogCmd.Flags().AddFlagSet(deviceFlags())
	catalogCmd.Flags().Bool("kernel", false, "List kernel images instead of recoveries")
	catalogCmd.Flags().StringP("output", "o", "text", "Output format: text, json")
}

func runCatalog(cmd *cobra.Command, args []string) {
	kernel, _ := cmd.Flags().GetBool("kernel")
	outputFmt, _ := cmd.Flags().GetString("output")

	cfg := loadConfig(cmd)
	applyDeviceFlags(cmd, cfg)

	p, err := cfg.Resolver().Current(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: device support could not be determined: %v\n", err)
		os.Exit(1)
	}

	images := p.RecoveryImages
	flavors := catalog.NewRecovery().Flavors()
	if kernel {
		images = p.KernelImages
		flavors = catalog.NewKernel().Flavors()
	}
	if len(args) == 1 {
		f, err := catalog.ParseFlavor(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		flavors = []catalog.Flavor{f}
	}

	buckets := make(map[catalog.Flavor][]string, len(flavors))
	for _, f := range flavors {
		buckets[f] = images(f)
	}

	if outputFmt == "json" {
		if err := output.PrintJSON(os.Stdout, buckets); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, f := range flavors {
		if len(flavors) > 1 {
			fmt.Printf("%s:\n", f)
		}
		output.PrintImages(os.Stdout, buckets[f])
	}
}
