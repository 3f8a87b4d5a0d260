package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/fitkit/pkg/config"
	"github.com/ssargent/fitkit/pkg/fit"
	"github.com/ssargent/fitkit/pkg/profile"
)

// encodeDocument is the YAML input of the encode command
type encodeDocument struct {
	HeaderSize      int                      `yaml:"headerSize"`
	FileCRC         *bool                    `yaml:"fileCrc"`
	DeveloperFields []developerFieldDocument `yaml:"developerFields"`
	Messages        []messageDocument        `yaml:"messages"`
}

type developerFieldDocument struct {
	Key              int            `yaml:"key"`
	DeveloperDataID  map[string]any `yaml:"developerDataId"`
	FieldDescription map[string]any `yaml:"fieldDescription"`
}

type messageDocument struct {
	Mesg            string         `yaml:"mesg"`
	Fields          map[string]any `yaml:"fields"`
	DeveloperFields map[int]any    `yaml:"developerFields"`
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <messages.yaml>",
	Short: "Encode messages described in YAML into a FIT file",
	Long: `Encode the messages listed in a YAML document into a FIT file.

Each message names its profile message and fields; enum fields take their
names, date-time fields take RFC 3339 timestamps. Developer fields are
declared once under developerFields and referenced by key.

Example document:
  messages:
    - mesg: fileId
      fields: {type: activity, manufacturer: development, timeCreated: "2024-05-01T06:00:00Z"}
    - mesg: record
      fields: {heartRate: 140, speed: 3.2}

Example:
  fitkit encode run.yaml -o run.fit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return fmt.Errorf("--output is required")
		}

		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer in.Close()

		data, err := encodeYAML(in, appConfig.Encode)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("encoded FIT file", "path", output, "bytes", len(data))
		cmd.Printf("Wrote %d bytes to %s\n", len(data), output)
		return nil
	},
}

// encodeYAML reads an encode document from r and returns the FIT bytes
func encodeYAML(r io.Reader, defaults config.Encode) ([]byte, error) {
	var doc encodeDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	settings := defaults
	if doc.HeaderSize != 0 {
		settings.HeaderSize = doc.HeaderSize
	}
	if doc.FileCRC != nil {
		settings.FileCRC = *doc.FileCRC
	}
	enc, err := fit.NewEncoder(settings.EncoderOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	var devMesgs []fit.Message
	for _, d := range doc.DeveloperFields {
		id, err := buildMessage(strconv.Itoa(int(profile.MesgNumDeveloperDataID)), d.DeveloperDataID)
		if err != nil {
			return nil, err
		}
		desc, err := buildMessage(strconv.Itoa(int(profile.MesgNumFieldDescription)), d.FieldDescription)
		if err != nil {
			return nil, err
		}
		if err := enc.AddDeveloperField(d.Key, id, desc); err != nil {
			return nil, fmt.Errorf("developer field %d: %w", d.Key, err)
		}
		devMesgs = append(devMesgs, id, desc)
	}

	for i, m := range doc.Messages {
		msg, err := buildMessage(m.Mesg, m.Fields)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		if len(m.DeveloperFields) > 0 {
			msg.DeveloperFields = m.DeveloperFields
			// descriptions go out once, ahead of the first message that needs them
			for _, dm := range devMesgs {
				if err := enc.WriteMesg(dm); err != nil {
					return nil, fmt.Errorf("developer description: %w", err)
				}
			}
			devMesgs = nil
		}
		if err := enc.WriteMesg(msg); err != nil {
			return nil, fmt.Errorf("message %d (%s): %w", i, m.Mesg, err)
		}
	}

	out, err := enc.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to finish file: %w", err)
	}
	return out, nil
}

// buildMessage resolves a message name or number and converts date-time strings
func buildMessage(mesg string, fields map[string]any) (fit.Message, error) {
	var num profile.MesgNum
	if mp := profile.MessageByName(mesg); mp != nil {
		num = mp.Num
	} else if n, err := strconv.ParseUint(mesg, 10, 16); err == nil {
		num = profile.MesgNum(n)
	} else {
		return fit.Message{}, fmt.Errorf("unknown message %q", mesg)
	}

	msg := fit.NewMessage(num)
	mp := profile.Message(num)
	for name, v := range fields {
		if s, ok := v.(string); ok && mp != nil {
			if _, layout, ok := mp.LookupName(name); ok &&
				(layout.Type == profile.TypeDateTime || layout.Type == profile.TypeLocalDateTime) {
				t, err := time.Parse(time.RFC3339, s)
				if err != nil {
					return fit.Message{}, fmt.Errorf("field %s: %w", name, err)
				}
				v = t
			}
		}
		msg.Fields[name] = v
	}
	return msg, nil
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringP("output", "o", "", "Output FIT file (required)")
}
