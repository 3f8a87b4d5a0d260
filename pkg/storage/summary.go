package storage

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/fitkit/pkg/fit"
	"github.com/ssargent/fitkit/pkg/profile"
)

var ErrNotFIT = errors.New("storage: not a FIT file")

// Summary describes an archived activity without its records
type Summary struct {
	ID              string         `json:"id"`
	Name            string         `json:"name,omitempty"`
	Size            int            `json:"size"`
	StoredSize      int            `json:"storedSize"`
	Compression     string         `json:"compression"`
	FileType        string         `json:"fileType,omitempty"`
	Manufacturer    string         `json:"manufacturer,omitempty"`
	TimeCreated     *time.Time     `json:"timeCreated,omitempty"`
	ProtocolVersion uint8          `json:"protocolVersion"`
	ProfileVersion  uint16         `json:"profileVersion"`
	Integrity       bool           `json:"integrity"`
	Messages        int            `json:"messages"`
	Counts          map[string]int `json:"counts"`
	Errors          []string       `json:"errors,omitempty"`
	ArchivedAt      time.Time      `json:"archivedAt"`
}

// Summarize decodes raw and collects its summary. Recoverable decode errors are kept
// in Summary.Errors; a structural failure is returned.
func Summarize(raw []byte, opts fit.ReadOptions) (Summary, error) {
	stream := fit.NewStream(raw)
	if !fit.IsFIT(stream) {
		return Summary{}, ErrNotFIT
	}
	header, err := fit.PeekFileHeader(stream)
	if err != nil {
		return Summary{}, errors.Mark(err, ErrNotFIT)
	}

	dec := fit.NewDecoder(stream)
	integrity := dec.CheckIntegrity()

	opts.DataOnly = false
	opts.SkipHeader = false
	result, err := dec.Read(fit.WithReadOptions(opts))
	if err != nil {
		return Summary{}, errors.Wrap(err, "decode activity")
	}

	s := Summary{
		Size:            len(raw),
		ProtocolVersion: header.ProtocolVersion,
		ProfileVersion:  header.ProfileVersion,
		Integrity:       integrity,
		Messages:        result.Count(),
		Counts:          result.Counts(),
		Errors:          result.ErrorStrings(),
	}

	if ids := result.Mesgs(profile.MesgNumFileID); len(ids) > 0 {
		if v, ok := ids[0].Get("type"); ok {
			s.FileType = fmt.Sprint(v)
		}
		if v, ok := ids[0].Get("manufacturer"); ok {
			s.Manufacturer = fmt.Sprint(v)
		}
		if v, ok := ids[0].Get("timeCreated"); ok {
			switch t := v.(type) {
			case time.Time:
				s.TimeCreated = &t
			case int64:
				tc := fit.ConvertDateTimeToDate(uint32(t))
				s.TimeCreated = &tc
			case uint64:
				tc := fit.ConvertDateTimeToDate(uint32(t))
				s.TimeCreated = &tc
			}
		}
	}
	return s, nil
}
