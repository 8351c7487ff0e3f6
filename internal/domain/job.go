package domain

// Field keys of a JobRecord. Column order in the CSV follows BasicFields and
// ExtendedFields.
const (
	FieldTitle                   = "title"
	FieldDepartment              = "department"
	FieldLocation                = "location"
	FieldLink                    = "link"
	FieldRoleResponsibilities    = "role_responsibilities"
	FieldBasicQualifications     = "basic_qualifications"
	FieldPreferredQualifications = "preferred_qualifications"
	FieldExtraInfo               = "extra_info"
)

// Placeholders written instead of a value that could not be extracted.
const (
	NoData           = "No data"
	NoLink           = "No link"
	InfoNotAvailable = "Information not available"
)

var BasicFields = []string{
	FieldTitle,
	FieldDepartment,
	FieldLocation,
	FieldLink,
}

var ExtendedFields = []string{
	FieldTitle,
	FieldDepartment,
	FieldLocation,
	FieldLink,
	FieldRoleResponsibilities,
	FieldBasicQualifications,
	FieldPreferredQualifications,
	FieldExtraInfo,
}

// JobRecord is a flat string mapping that remembers the order keys were first
// set in.
type JobRecord struct {
	keys   []string
	values map[string]string
}

func NewJobRecord() JobRecord {
	return JobRecord{values: make(map[string]string)}
}

func (r *JobRecord) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r JobRecord) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or "" when the key was never set.
func (r JobRecord) Value(key string) string {
	return r.values[key]
}

func (r JobRecord) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r JobRecord) Len() int { return len(r.keys) }
