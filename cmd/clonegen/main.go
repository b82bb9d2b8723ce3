// Command clonegen generates clonable handle types for interfaces that
// embed dupe.AnyCloner. For each named interface Foo it emits a FooHandle
// wrapper whose Clone method delegates to dupe.CloneBox, so containers
// holding FooHandle fields can derive the ordinary Clone protocol.
//
// Usage:
//
//	clonegen --iface Shape --iface Renderer -o handles_gen.go ./geometry
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "clonegen [--iface name]... [dir]",
	Short:        "Generate clonable handle types for erased interfaces",
	RunE:         runGenerate,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var (
	ifaceNames *[]string
	outPath    *string
)

func init() {
	ifaceNames = rootCmd.Flags().StringSliceP("iface", "i", nil, "interface to generate a handle for (repeatable)")
	outPath = rootCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	_ = rootCmd.MarkFlagRequired("iface")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	pkg, err := loadPackage(dir)
	if err != nil {
		return err
	}

	out, err := generate(pkg, *ifaceNames)
	if err != nil {
		return err
	}

	if *outPath == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	return os.WriteFile(*outPath, out, 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
