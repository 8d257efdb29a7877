package macro

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadResources decodes a YAML resource table of the form
//
//	en-us:
//	  general.name: Name
//	cs-cz:
//	  general.name: Jméno
func LoadResources(r io.Reader) (map[string]map[string]string, error) {
	table := make(map[string]map[string]string)
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		if err == io.EOF {
			return table, nil
		}
		return nil, fmt.Errorf("macro: decode resources: %w", err)
	}
	return table, nil
}
