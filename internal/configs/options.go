package configs

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Option is a single extra gpg option. An empty Value means the option is a
// bare flag.
type Option struct {
	Name  string
	Value string
}

// OptionList is an ordered list of options.
type OptionList []Option

// AdditionalOptions holds the extra gpg options for each operation. Always
// applies to every call and precedes the per-operation options.
type AdditionalOptions struct {
	Always  OptionList
	Decrypt OptionList
	Encrypt OptionList
	Sign    OptionList
}

func (o *AdditionalOptions) section(name string) (*OptionList, bool) {
	switch name {
	case "always":
		return &o.Always, true
	case "decrypt":
		return &o.Decrypt, true
	case "encrypt":
		return &o.Encrypt, true
	case "sign":
		return &o.Sign, true
	}
	return nil, false
}

// orderedOptions rebuilds the option tables in file order. raw holds the
// decoded values, md the key order.
func orderedOptions(md toml.MetaData, raw map[string]map[string]string) (AdditionalOptions, error) {
	var opts AdditionalOptions
	for _, key := range md.Keys() {
		if len(key) < 3 || key[0] != "gpg" || key[1] != "options" {
			continue
		}
		list, ok := opts.section(key[2])
		if !ok {
			return AdditionalOptions{}, fmt.Errorf("unknown gpg option section %q", key[2])
		}
		switch len(key) {
		case 3:
			continue
		case 4:
			*list = append(*list, Option{Name: key[3], Value: raw[key[2]][key[3]]})
		default:
			return AdditionalOptions{}, fmt.Errorf("gpg option %q must be a string", key.String())
		}
	}
	return opts, nil
}
