package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BioHaZard1/Rashr/internal/alias"
	"github.com/BioHaZard1/Rashr/internal/output"
	"github.com/BioHaZard1/Rashr/internal/platform"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <device>",
	Short: "Map a raw device name to its canonical identifier",
	Long: `Map a raw device name to its canonical identifier.

Examples:
  rashr normalize GT-N7000B
  rashr normalize xt925 --board msm8960 --manufacturer motorola
  rashr normalize C6603 -o json`,
	Args: cobra.ExactArgs(1),
	Run:  runNormalize,
}

func init() {
	normalizeCmd.Flags().String("board", "", "ro.product.board value")
	normalizeCmd.Flags().String("model", "", "ro.product.model value")
	normalizeCmd.Flags().String("manufacturer", "", "ro.product.manufacturer value")
	normalizeCmd.Flags().StringP("output", "o", "text", "Output format: text, json")
}

func runNormalize(cmd *cobra.Command, args []string) {
	board, _ := cmd.Flags().GetString("board")
	model, _ := cmd.Flags().GetString("model")
	manufacturer, _ := cmd.Flags().GetString("manufacturer")
	outputFmt, _ := cmd.Flags().GetString("output")

	id := platform.Identity{Board: board, Model: model, Device: args[0], Manufacturer: manufacturer}.Lower()
	res := alias.Normalize(id)

	if outputFmt == "json" {
		if err := output.PrintJSON(os.Stdout, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(res.Device)
	if res.RecoveryExt != "" {
		fmt.Printf("recovery images: *%s\n", res.RecoveryExt)
	}
	for _, rule := range res.Matched {
		fmt.Printf("  matched: %s\n", rule)
	}
}
