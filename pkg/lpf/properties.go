package lpf

// FeatureClasses maps the LPF feature class codes to their descriptions.
var FeatureClasses = map[string]string{
	"A": "Administrative entities (e.g. countries, provinces, municipalities)",
	"H": "Water bodies (e.g. rivers, lakes, bays, seas)",
	"L": "Regions, landscape areas (cultural, geographic, historical)",
	"P": "Populated places (e.g. cities, towns, hamlets)",
	"R": "Roads, routes, rail",
	"S": "Sites (e.g. archaeological sites, buildings, complexes)",
	"T": "Terrestrial landforms (e.g. mountains, valleys, capes)",
}

// ValidateProperties applies the LPF schema for the feature properties
// block: "title" must be a string, "ccodes" and "fclasses" must be
// arrays of strings, and every fclass must be one of the seven LPF
// feature class codes. Country codes are not validated beyond their type.
//
// Decoding never applies this check; the open property mapping needs
// only to be an object. Callers that require LPF-conformant records
// invoke it explicitly.
func (f *Feature) ValidateProperties() error {
	return validateProperties(f.Properties, "properties")
}

func validateProperties(properties map[string]any, path string) error {
	title, present := properties["title"]
	if !present {
		return errAt(joinPath(path, "title"), "missing required field")
	}
	if _, ok := title.(string); !ok {
		return errAt(joinPath(path, "title"), "must be a string, got %s", describe(title))
	}

	for _, key := range []string{"ccodes", "fclasses"} {
		raw, present := properties[key]
		if !present {
			return errAt(joinPath(path, key), "missing required field")
		}
		items, err := stringList(raw, joinPath(path, key))
		if err != nil {
			return err
		}
		if key != "fclasses" {
			continue
		}
		for i, fclass := range items {
			if _, ok := FeatureClasses[fclass]; !ok {
				return errAt(indexPath(joinPath(path, key), i),
					"invalid feature class %q", fclass)
			}
		}
	}
	return nil
}

// stringList converts a decoded JSON value into a []string, accepting
// both []any (decoded input) and []string (caller-built properties).
func stringList(v any, path string) ([]string, error) {
	switch items := v.(type) {
	case []string:
		return items, nil
	case []any:
		out := make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, errAt(indexPath(path, i), "must be a string, got %s", describe(item))
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, errAt(path, "must be an array of strings, got %s", describe(v))
	}
}
