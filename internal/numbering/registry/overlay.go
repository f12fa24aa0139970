package registry

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type overlayFile struct {
	Territories []CountryRecord `yaml:"territories"`
}

// LoadYAML decodes an overlay document of the form
//
//	territories:
//	  - code: XX
//	    name: Example
//	    calling_code: "+999"
//	    pattern: '\d{8}'
//	    example: "12345678"
//	    trunk: none
//
// Every record must pass Check. Missing glyphs are derived from the code.
func LoadYAML(r io.Reader) ([]CountryRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc overlayFile
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode overlay: %w", err)
	}

	out := make([]CountryRecord, 0, len(doc.Territories))
	for i, rec := range doc.Territories {
		rec = rec.Canonical()
		if err := rec.Check(); err != nil {
			return nil, fmt.Errorf("overlay territory #%d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadYAMLFile reads an overlay from path.
func LoadYAMLFile(path string) ([]CountryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay %s: %w", path, err)
	}
	return LoadYAML(bytes.NewReader(data))
}
