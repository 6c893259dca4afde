package haveup

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/aither64/haveup/profile"
)

// Settings is the typed view of a resolved profile.
type Settings struct {
	PublicURL    string   `mapstructure:"publicurl" validate:"required"`
	UploadURL    string   `mapstructure:"uploadurl" validate:"required"`
	Subdir       string   `mapstructure:"subdir"`
	HashName     bool     `mapstructure:"hashname"`
	Checksum     []string `mapstructure:"checksum"`
	KeepChecksum bool     `mapstructure:"keep_checksum"`

	// Transport credentials.
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
}

// Overrides holds the values given explicitly on the command line.
// A nil field means the flag was not set.
type Overrides struct {
	Subdir       *string
	HashName     *bool
	Checksum     []string
	KeepChecksum *bool
}

// Options is the resolved configuration for a single run.
// It is built once by NewOptions and not modified afterwards.
type Options struct {
	Files                []string `validate:"min=1,dive,required"`
	ProfileName          string
	Subdir               string
	HashName             bool
	ChecksumAlgorithms   []string `validate:"dive,alphanum"`
	KeepChecksumArtifact bool
	Profile              Settings
}

// NewOptions coerces the resolved profile into typed settings and applies
// the command line overrides.
//
// Each of subdir, hash naming, checksum algorithms and artifact retention is
// taken from the command line when set there, else from the profile, else
// left at its zero value.
func NewOptions(files []string, p *profile.Profile, o Overrides) (*Options, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if p == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidOptions)
	}

	settings, err := decodeSettings(p.Values)
	if err != nil {
		return nil, fmt.Errorf("%w: profile %s: %w", ErrInvalidOptions, p.Name, err)
	}

	opts := &Options{
		Files:                append([]string(nil), files...),
		ProfileName:          p.Name,
		Subdir:               settings.Subdir,
		HashName:             settings.HashName,
		ChecksumAlgorithms:   settings.Checksum,
		KeepChecksumArtifact: settings.KeepChecksum,
		Profile:              settings,
	}

	if o.Subdir != nil && *o.Subdir != "" {
		opts.Subdir = *o.Subdir
	}
	if o.HashName != nil {
		opts.HashName = *o.HashName
	}
	if o.Checksum != nil {
		opts.ChecksumAlgorithms = o.Checksum
	}
	if o.KeepChecksum != nil {
		opts.KeepChecksumArtifact = *o.KeepChecksum
	}

	opts.Subdir = strings.Trim(opts.Subdir, "/")
	opts.ChecksumAlgorithms = normalizeAlgorithms(opts.ChecksumAlgorithms)

	if err := validator.New().Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	return opts, nil
}

func decodeSettings(values map[string]string) (Settings, error) {
	var s Settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return Settings{}, err
	}
	if err := dec.Decode(values); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// normalizeAlgorithms turns a list of (possibly comma separated) identifiers
// into an ordered set of lowercase names.
func normalizeAlgorithms(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		for _, alg := range strings.Split(item, ",") {
			alg = strings.ToLower(strings.TrimSpace(alg))
			if alg == "" {
				continue
			}
			if _, ok := seen[alg]; ok {
				continue
			}
			seen[alg] = struct{}{}
			out = append(out, alg)
		}
	}
	return out
}
