package domain

// Section ties a detail-page heading label to the record field it fills.
type Section struct {
	Label string
	Field string
}

var DefaultSections = []Section{
	{Label: "Role and Responsibilities", Field: FieldRoleResponsibilities},
	{Label: "Basic Qualifications", Field: FieldBasicQualifications},
	{Label: "Preferred Qualifications", Field: FieldPreferredQualifications},
	{Label: "Extra Information", Field: FieldExtraInfo},
}
