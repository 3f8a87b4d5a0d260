package fit

import (
	"io"
	"log/slog"

	"github.com/ssargent/fitkit/pkg/profile"
)

// MesgListener receives every decoded message in stream order
type MesgListener func(num profile.MesgNum, msg Message)

// MesgDefinitionListener receives every definition record in stream order
type MesgDefinitionListener func(def MessageDefinition)

// FieldDescriptionListener receives each developer field description once, with the
// key its values use in Message.DeveloperFields
type FieldDescriptionListener func(key int, developerDataIDMesg, fieldDescriptionMesg Message)

// ReadOptions controls a decode pass
type ReadOptions struct {
	ExpandSubFields         bool
	ExpandComponents        bool
	ApplyScaleAndOffset     bool
	ConvertTypesToStrings   bool
	ConvertDateTimesToDates bool
	IncludeUnknownData      bool
	MergeHeartRates         bool
	DecodeMemoGlobs         bool
	SkipHeader              bool
	DataOnly                bool

	// IgnoreUnresolvedDeveloperFields drops developer fields without a description
	// silently instead of recording an UnresolvedDeveloperFieldError
	IgnoreUnresolvedDeveloperFields bool

	MesgListener             MesgListener
	MesgDefinitionListener   MesgDefinitionListener
	FieldDescriptionListener FieldDescriptionListener
	Logger                   *slog.Logger
}

// DefaultReadOptions returns the defaults of a decode pass
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		ExpandSubFields:         true,
		ExpandComponents:        true,
		ApplyScaleAndOffset:     true,
		ConvertTypesToStrings:   true,
		ConvertDateTimesToDates: true,
		MergeHeartRates:         true,
	}
}

// Option adjusts ReadOptions
type Option func(*ReadOptions)

// WithReadOptions replaces every option at once
func WithReadOptions(o ReadOptions) Option {
	return func(dst *ReadOptions) { *dst = o }
}

// WithExpandSubFields toggles sub-field resolution
func WithExpandSubFields(v bool) Option {
	return func(o *ReadOptions) { o.ExpandSubFields = v }
}

// WithExpandComponents toggles component expansion
func WithExpandComponents(v bool) Option {
	return func(o *ReadOptions) { o.ExpandComponents = v }
}

// WithApplyScaleAndOffset toggles conversion to real-world units
func WithApplyScaleAndOffset(v bool) Option {
	return func(o *ReadOptions) { o.ApplyScaleAndOffset = v }
}

// WithConvertTypesToStrings toggles enum to name conversion
func WithConvertTypesToStrings(v bool) Option {
	return func(o *ReadOptions) { o.ConvertTypesToStrings = v }
}

// WithConvertDateTimesToDates toggles date-time to time.Time conversion
func WithConvertDateTimesToDates(v bool) Option {
	return func(o *ReadOptions) { o.ConvertDateTimesToDates = v }
}

// WithIncludeUnknownData keeps messages and fields the profile does not know
func WithIncludeUnknownData(v bool) Option {
	return func(o *ReadOptions) { o.IncludeUnknownData = v }
}

// WithMergeHeartRates toggles merging hr messages into record heart rates
func WithMergeHeartRates(v bool) Option {
	return func(o *ReadOptions) { o.MergeHeartRates = v }
}

// WithDecodeMemoGlobs toggles memo glob reassembly
func WithDecodeMemoGlobs(v bool) Option {
	return func(o *ReadOptions) { o.DecodeMemoGlobs = v }
}

// WithSkipHeader starts at the stream position, which must be the first record
func WithSkipHeader(v bool) Option {
	return func(o *ReadOptions) { o.SkipHeader = v }
}

// WithDataOnly only invokes listeners and builds no collections
func WithDataOnly(v bool) Option {
	return func(o *ReadOptions) { o.DataOnly = v }
}

// WithIgnoreUnresolvedDeveloperFields tolerates developer fields without descriptions
func WithIgnoreUnresolvedDeveloperFields(v bool) Option {
	return func(o *ReadOptions) { o.IgnoreUnresolvedDeveloperFields = v }
}

// WithMesgListener sets the message listener
func WithMesgListener(l MesgListener) Option {
	return func(o *ReadOptions) { o.MesgListener = l }
}

// WithMesgDefinitionListener sets the definition listener
func WithMesgDefinitionListener(l MesgDefinitionListener) Option {
	return func(o *ReadOptions) { o.MesgDefinitionListener = l }
}

// WithFieldDescriptionListener sets the developer field description listener
func WithFieldDescriptionListener(l FieldDescriptionListener) Option {
	return func(o *ReadOptions) { o.FieldDescriptionListener = l }
}

// WithLogger routes decoder diagnostics to l
func WithLogger(l *slog.Logger) Option {
	return func(o *ReadOptions) { o.Logger = l }
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
