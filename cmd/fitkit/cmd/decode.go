package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ssargent/fitkit/pkg/batch"
	"github.com/ssargent/fitkit/pkg/fit"
)

// decodeOutput is the JSON written for one decoded file
type decodeOutput struct {
	Path           string                   `json:"path"`
	Integrity      bool                     `json:"integrity"`
	ProfileVersion uint16                   `json:"profileVersion,omitempty"`
	Counts         map[string]int           `json:"counts,omitempty"`
	Messages       map[string][]fit.Message `json:"messages,omitempty"`
	Errors         []string                 `json:"errors,omitempty"`
	Error          string                   `json:"error,omitempty"`
	DurationMS     float64                  `json:"durationMs"`
}

// decodeFlags binds each boolean decoder option to a flag
var decodeFlags = []struct {
	name  string
	usage string
	field func(*fit.ReadOptions) *bool
}{
	{"expand-sub-fields", "Resolve dynamic sub-fields", func(o *fit.ReadOptions) *bool { return &o.ExpandSubFields }},
	{"expand-components", "Expand packed component fields", func(o *fit.ReadOptions) *bool { return &o.ExpandComponents }},
	{"apply-scale-and-offset", "Convert values to real-world units", func(o *fit.ReadOptions) *bool { return &o.ApplyScaleAndOffset }},
	{"convert-types-to-strings", "Replace enum values with their names", func(o *fit.ReadOptions) *bool { return &o.ConvertTypesToStrings }},
	{"convert-date-times-to-dates", "Convert FIT date-times to timestamps", func(o *fit.ReadOptions) *bool { return &o.ConvertDateTimesToDates }},
	{"include-unknown-data", "Keep messages and fields missing from the profile", func(o *fit.ReadOptions) *bool { return &o.IncludeUnknownData }},
	{"merge-heart-rates", "Merge hr messages into record heart rates", func(o *fit.ReadOptions) *bool { return &o.MergeHeartRates }},
	{"decode-memo-globs", "Reassemble memo glob text", func(o *fit.ReadOptions) *bool { return &o.DecodeMemoGlobs }},
	{"ignore-unresolved-developer-fields", "Drop developer fields without a description", func(o *fit.ReadOptions) *bool { return &o.IgnoreUnresolvedDeveloperFields }},
}

// readOptionsFromFlags applies explicitly set decode flags on top of base
func readOptionsFromFlags(cmd *cobra.Command, base fit.ReadOptions) fit.ReadOptions {
	o := base
	for _, f := range decodeFlags {
		if cmd.Flags().Changed(f.name) {
			v, _ := cmd.Flags().GetBool(f.name)
			*f.field(&o) = v
		}
	}
	return o
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file...>",
	Short: "Decode FIT files to JSON",
	Long: `Decode one or more FIT files and print the messages as JSON.

Defaults come from the decode section of the configuration; flags override them.

Examples:
  fitkit decode activity.fit
  fitkit decode --apply-scale-and-offset=false --summary *.fit
  fitkit decode -o out.json --pretty activity.fit`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		summaryOnly, _ := cmd.Flags().GetBool("summary")
		pretty, _ := cmd.Flags().GetBool("pretty")
		output, _ := cmd.Flags().GetString("output")

		if concurrency <= 0 {
			concurrency = appConfig.Decode.Concurrency
		}
		opts := readOptionsFromFlags(cmd, appConfig.Decode.ReadOptions())
		opts.Logger = logger

		out := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		return runDecode(cmd.Context(), out, args, opts, concurrency, summaryOnly, pretty)
	},
}

// runDecode decodes paths and writes one JSON document: an object for a single
// path, an array otherwise
func runDecode(ctx context.Context, w io.Writer, paths []string, opts fit.ReadOptions,
	concurrency int, summaryOnly, pretty bool) error {
	results, err := batch.DecodeFiles(contextOrBackground(ctx), paths, []fit.Option{fit.WithReadOptions(opts)}, concurrency)
	if err != nil {
		return fmt.Errorf("decode interrupted: %w", err)
	}

	outputs := make([]decodeOutput, len(results))
	failed := 0
	for i, r := range results {
		o := decodeOutput{
			Path:       r.Path,
			Integrity:  r.Integrity,
			DurationMS: float64(r.Duration.Microseconds()) / 1000,
		}
		if r.Result != nil {
			o.ProfileVersion = r.Result.ProfileVersion
			o.Counts = r.Result.Counts()
			o.Errors = r.Result.ErrorStrings()
			if !summaryOnly {
				o.Messages = r.Result.Messages
			}
		}
		if r.Err != nil {
			o.Error = r.Err.Error()
			failed++
			logger.Warn("decode failed", "path", r.Path, "error", r.Err)
		}
		outputs[i] = o
	}

	var doc interface{} = outputs
	if len(outputs) == 1 {
		doc = outputs[0]
	}
	var data []byte
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(paths))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	for _, f := range decodeFlags {
		decodeCmd.Flags().Bool(f.name, false, f.usage)
	}
	decodeCmd.Flags().IntP("concurrency", "j", 0, "Files decoded in parallel (default from config)")
	decodeCmd.Flags().Bool("summary", false, "Only print message counts")
	decodeCmd.Flags().Bool("pretty", false, "Indent the JSON output")
	decodeCmd.Flags().StringP("output", "o", "", "Write JSON to a file instead of stdout")
}
