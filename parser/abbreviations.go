package parser

import "strings"

// componentAliases maps known pay-component abbreviations and spelling
// variants to one canonical component name. Keys are compared after
// lowercasing and stripping spaces, dots, hyphens, underscores and slashes,
// so "BASIC PAY", "Basic-Pay" and "BASICPAY" all hit the same entry.
var componentAliases = map[string]string{
	// earnings
	"bpay":     "Basic Pay",
	"basicpay": "Basic Pay",
	"basic":    "Basic Pay",
	"pay":      "Basic Pay",

	"da":                "Dearness Allowance",
	"dearnessallowance": "Dearness Allowance",
	"dearnessallce":     "Dearness Allowance",

	"msp":                "Military Service Pay",
	"militaryservicepay": "Military Service Pay",

	"hra":                "House Rent Allowance",
	"houserentallowance": "House Rent Allowance",

	"tpta":               "Transport Allowance",
	"tptl":               "Transport Allowance",
	"transportallowance": "Transport Allowance",
	"travelallowance":    "Transport Allowance",

	"cea":                        "Children Education Allowance",
	"childreneducationallowance": "Children Education Allowance",

	"washa":      "Washing Allowance",
	"outfita":    "Outfit Allowance",
	"specialpay": "Special Pay",
	"arrears":    "Arrears",
	"arr":        "Arrears",
	"bonus":      "Bonus",

	// deductions
	"dsop":          "DSOP Fund",
	"dsopfund":      "DSOP Fund",
	"dsopsubn":      "DSOP Fund",
	"pf":            "DSOP Fund",
	"providentfund": "DSOP Fund",

	"itax":      "Income Tax",
	"incometax": "Income Tax",
	"tds":       "Income Tax",
	"incmtax":   "Income Tax",

	"agif":  "AGIF",
	"cghs":  "CGHS",
	"cgeis": "CGEIS",

	"afmsd":       "AFMSD",
	"mess":        "Mess Charges",
	"messcharges": "Mess Charges",
	"canteen":     "Canteen",

	"lfee":       "License Fee",
	"licensefee": "License Fee",
	"licencefee": "License Fee",

	"water":       "Water Charges",
	"elec":        "Electricity Charges",
	"electricity": "Electricity Charges",

	"loan":    "Loan Repayment",
	"loans":   "Loan Repayment",
	"advance": "Advance Recovery",
	"adv":     "Advance Recovery",
}

// CanonicalComponentName maps a pay-component name through the alias table.
// It is total: unknown names come back unchanged, and canonical names map
// to themselves, so applying it twice is a no-op.
func CanonicalComponentName(name string) string {
	if canonical, ok := componentAliases[foldComponentKey(name)]; ok {
		return canonical
	}
	return name
}

func foldComponentKey(name string) string {
	folded := strings.ToLower(strings.TrimSpace(name))
	for _, r := range []string{" ", ".", "-", "/", "_"} {
		folded = strings.ReplaceAll(folded, r, "")
	}
	return folded
}
