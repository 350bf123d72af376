package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/BioHaZard1/Rashr/internal/platform"
	"github.com/BioHaZard1/Rashr/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rashr version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rashr %s (%s %s/%s)\n", version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Printf("kernel: %s\n", platform.KernelVersion())
	},
}
