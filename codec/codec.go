// Package codec selects the JSON encoder used by the JSON point format.
//
// Both codecs produce interchangeable JSON; they differ only in speed.
package codec

import (
	"fmt"
	"sort"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name.
// An empty name returns Default.
func ByName(name string) (Codec, error) {
	switch name {
	case "":
		return Default, nil
	case "json":
		return JSON{}, nil
	case "go-json":
		return GoJSON{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (available: %v)", name, Names())
	}
}

// Names returns the names of the built-in codecs.
func Names() []string {
	names := []string{JSON{}.Name(), GoJSON{}.Name()}
	sort.Strings(names)
	return names
}
