package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/fitkit/pkg/fit"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file...>",
	Short: "Verify FIT headers and checksums",
	Long: `Check that each file is a FIT file and that its header and trailer
checksums match. Chained files are checked one after another.

Example:
  fitkit check activity.fit course.fit`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if !checkFile(cmd.OutOrStdout(), path) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed the check", failed, len(args))
		}
		return nil
	},
}

// checkFile prints one status line for path and reports whether it passed
func checkFile(w io.Writer, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return false
	}

	stream := fit.NewStream(data)
	dec := fit.NewDecoder(stream)
	if !dec.IsFIT() {
		fmt.Fprintf(w, "%s: not a FIT file\n", path)
		return false
	}
	h, err := fit.PeekFileHeader(stream)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return false
	}

	if err := dec.VerifyIntegrity(); err != nil {
		fmt.Fprintf(w, "%s: FAILED %v\n", path, err)
		return false
	}
	fmt.Fprintf(w, "%s: OK (header %d, protocol %d.%d, profile %d, %d data bytes)\n",
		path, h.Size, h.ProtocolVersion>>4, h.ProtocolVersion&0x0F, h.ProfileVersion, h.DataSize)
	return true
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
