package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/parser"
)

// optionFlags maps generator flags onto viper keys below "generate".
var optionFlags = map[string]string{
	"input-directory":    "generate.in_dir",
	"output-directory":   "generate.out_dir",
	"namespace":          "generate.namespace",
	"profile":            "generate.profile",
	"suffix":             "generate.suffix",
	"field-access":       "generate.field_access",
	"final":              "generate.final",
	"constructor":        "generate.constructor",
	"getters":            "generate.getters",
	"setters":            "generate.setters",
	"fluent-setters":     "generate.fluent_setters",
	"adders":             "generate.adders",
	"no-strict-types":    "generate.no_strict_types",
	"exclude-deprecated": "generate.exclude_deprecated",
	"exclude-types":      "generate.exclude_types",
}

func addOptionFlags(fs *pflag.FlagSet, excludeByTagStrings *[]string) {
	d := parser.NewOptions()
	fs.StringP("input-directory", "i", d.InDir, "directory of the Go module to scan")
	fs.StringP("output-directory", "o", d.OutDir, "directory to write PHP classes to")
	fs.StringP("namespace", "n", "", "PHP namespace (default: derived from the go.mod module path)")
	fs.StringP("profile", "p", d.Profile, "PHP syntax profile (legacy, intermediate, modern)")
	fs.StringP("suffix", "s", "", "suffix to append to generated class names")
	fs.StringP("field-access", "a", d.FieldAccess, "property visibility (public, protected, private)")
	fs.BoolP("final", "F", false, "declare generated classes final")
	fs.BoolP("constructor", "c", false, "generate a constructor assigning every property")
	fs.BoolP("getters", "g", false, "generate getters")
	fs.Bool("setters", false, "generate setters")
	fs.Bool("fluent-setters", false, "generate setters returning $this")
	fs.Bool("adders", false, "generate adders for array properties")
	fs.Bool("no-strict-types", false, "omit declare(strict_types=1)")
	fs.BoolP("exclude-deprecated", "d", false, "exclude deprecated types and fields")
	fs.StringSliceP("exclude-types", "t", []string{}, "exclude named types")
	fs.StringSliceVarP(excludeByTagStrings, "exclude-tags", "T", []string{}, "exclude fields with matching tags, ex: dto:\"-\"")
}

// loadOptions merges config, environment and flags (highest priority) into
// generator options.
func loadOptions(fs *pflag.FlagSet, excludeByTagStrings []string) (*parser.Options, error) {
	for name, key := range optionFlags {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", name)
		}
	}

	var cfg struct {
		Generate parser.Options `mapstructure:"generate"`
	}
	cfg.Generate = *parser.NewOptions()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode generate options")
	}
	if err := cfg.Generate.Normalize(excludeByTagStrings...); err != nil {
		return nil, err
	}
	return &cfg.Generate, nil
}
