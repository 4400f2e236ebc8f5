package normalize

// EnvelopePaths are the places the marketplace API has been seen to put a
// record list, most specific first.
var EnvelopePaths = []string{
	"data.data",
	"data.items",
	"data.results",
	"data.orders",
	"data.disputes",
	"data.reviews",
	"data",
	"items",
	"results",
	"orders",
	"disputes",
	"reviews",
	"records",
}

// ExtractList finds the record list inside a decoded payload. A top-level
// array is used as-is; an object is searched along paths (EnvelopePaths when
// nil) for the first array. Elements that are not objects are skipped.
func ExtractList(payload any, paths []string) []Raw {
	if paths == nil {
		paths = EnvelopePaths
	}
	switch p := payload.(type) {
	case []any:
		return objects(p)
	case []Raw:
		return p
	case map[string]any:
		for _, path := range paths {
			if v, ok := lookup(p, path); ok {
				if list, ok := v.([]any); ok {
					return objects(list)
				}
			}
		}
	}
	return nil
}

func objects(list []any) []Raw {
	out := make([]Raw, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
