package schema

// commonAliases maps normalized header text to canonical field names.
// These are built-in domain knowledge and never mutated at runtime;
// user-confirmed aliases live in the promotion store instead.
var commonAliases = map[string]string{
	// company_name
	"company":      "company_name",
	"comp name":    "company_name",
	"organization": "company_name",
	"organisation": "company_name",
	"business":     "company_name",
	"firm":         "company_name",

	// tax_id
	"vat":             "tax_id",
	"vat no":          "tax_id",
	"gstin":           "tax_id",
	"reg no":          "tax_id",
	"registration no": "tax_id",
	"ein":             "tax_id",

	// email
	"e mail":        "email",
	"mail":          "email",
	"email address": "email",
	"contact email": "email",

	// phone
	"tel":            "phone",
	"tel no":         "phone",
	"telephone":      "phone",
	"mobile":         "phone",
	"phone number":   "phone",
	"contact number": "phone",

	// address
	"addr":           "address",
	"street":         "address",
	"street address": "address",
	"location":       "address",

	// city
	"town":     "city",
	"locality": "city",

	// state
	"province": "state",
	"region":   "state",

	// postal_code
	"zip":      "postal_code",
	"zip code": "postal_code",
	"postcode": "postal_code",
	"postal":   "postal_code",
	"pin":      "postal_code",
	"pincode":  "postal_code",
	"pin code": "postal_code",

	// country
	"nation": "country",

	// website
	"web":       "website",
	"url":       "website",
	"homepage":  "website",
	"home page": "website",
	"site":      "website",

	// industry
	"sector":        "industry",
	"business type": "industry",
	"vertical":      "industry",

	// employees
	"staff":          "employees",
	"headcount":      "employees",
	"workforce":      "employees",
	"employee count": "employees",

	// revenue
	"annual rev":     "revenue",
	"annual revenue": "revenue",
	"turnover":       "revenue",
	"yearly income":  "revenue",
	"sales":          "revenue",

	// date_established
	"founded":      "date_established",
	"established":  "date_established",
	"start date":   "date_established",
	"incorporated": "date_established",

	// contact_person
	"contact":   "contact_person",
	"rep":       "contact_person",
	"manager":   "contact_person",
	"attention": "contact_person",
}

// CommonAlias resolves a normalized header against the built-in alias table.
func CommonAlias(normalized string) (string, bool) {
	field, ok := commonAliases[normalized]
	return field, ok
}

// fieldSynonyms supplies extra tokens per canonical field for the token
// overlap tier, beyond the tokens of the field name itself.
var fieldSynonyms = map[string][]string{
	"company_name":     {"company", "organization", "business"},
	"tax_id":           {"vat", "gst", "registration"},
	"email":            {"mail", "contact"},
	"phone":            {"tel", "telephone", "mobile"},
	"address":          {"addr", "street"},
	"city":             {"town"},
	"state":            {"province", "region"},
	"postal_code":      {"zip", "postcode", "pin"},
	"country":          {"nation"},
	"website":          {"web", "url", "site"},
	"industry":         {"sector"},
	"employees":        {"staff", "headcount"},
	"revenue":          {"income", "turnover"},
	"date_established": {"founded", "established"},
	"contact_person":   {"contact", "rep"},
}

// Synonyms returns extra match tokens for a canonical field name.
func Synonyms(name string) []string {
	return fieldSynonyms[name]
}
