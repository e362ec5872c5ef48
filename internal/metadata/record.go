package metadata

// Frontmatter keys recognized across the pipeline. Extraction, composition,
// and registry re-extraction all speak this vocabulary.
const (
	FieldTitle         = "title"
	FieldComponentName = "componentName"
	FieldCID           = "CID"
	FieldUSPD          = "documentUspd"
	FieldDescription   = "description"
	FieldUseCategory   = "useCategory"
	FieldType          = "type"
	FieldVersion       = "version"
	FieldTags          = "tags"
	FieldRegistryID    = "registryId"
	FieldRegistryURL   = "registryUrl"
)

// ValueAbsent is the sentinel emitted where a downstream format requires a
// value but extraction produced none.
const ValueAbsent = "N/A"

// Record maps field names to extracted string values. Fields that matched no
// pattern are absent from the map, never empty strings.
type Record map[string]string

// Get returns the value for the field, or fallback when absent.
func (r Record) Get(field, fallback string) string {
	if value, ok := r[field]; ok && value != "" {
		return value
	}
	return fallback
}

// Has reports whether the field carries a value.
func (r Record) Has(field string) bool {
	value, ok := r[field]
	return ok && value != ""
}
