package models

// Server model names.
const (
	ModelPartner    = "res.partner"
	ModelProduct    = "product.product"
	ModelInvoice    = "account.move"
	ModelAttendance = "hr.attendance"
)

// Field sets requested from the server. An empty slice means "all fields"
// (server default).
var (
	PartnerFieldsBasic    = []string{"name", "email"}
	PartnerFieldsDetailed = []string{"name", "email", "phone", "city", "is_company"}

	AttendanceFieldsBasic = []string{
		"employee_id",
		"check_in",
		"check_out",
		"in_latitude",
		"in_longitude",
		"out_latitude",
		"out_longitude",
		"in_mode",
	}
	AttendanceFieldsDetailed = []string{
		"employee_id",
		"check_in",
		"check_out",
		"in_latitude",
		"in_longitude",
		"out_latitude",
		"out_longitude",
		"in_mode",
		"in_city",
		"in_country_name",
		"out_city",
		"out_country_name",
	}
)

// Default page sizes.
const (
	LimitSmall  = 5
	LimitMedium = 20
	LimitLarge  = 50
)
