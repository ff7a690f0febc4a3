package jdbc

import (
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
)

// stringFilter extracts an equality value for one constrained position.
// A nil result means the position is unfiltered, either because no
// restriction exists or because the restriction is not a simple equality.
func stringFilter(constraint Constraint, index int) *string {
	d, ok := constraint[index]
	if !ok || !d.Equality {
		return nil
	}
	v := d.Value
	return &v
}

// tablePrefix builds the listing scope for one catalog from the optional
// schema and table filters. The enumerator honors both independently, so a
// table filter narrows the listing even when no schema filter is present.
func tablePrefix(catalog string, schemaFilter, tableFilter *string) metadata.QualifiedTablePrefix {
	return metadata.NewQualifiedTablePrefix(catalog, schemaFilter, tableFilter)
}

// filterCatalogs restricts a catalog list to the filter value, preserving
// the enumerator's order.
func filterCatalogs(catalogs []string, filter *string) []string {
	if filter == nil {
		return catalogs
	}
	var matched []string
	for _, c := range catalogs {
		if c == *filter {
			matched = append(matched, c)
		}
	}
	return matched
}
