package wbs

import "strings"

// CostType identifies one of the five fixed cost categories every budget
// leaf carries.
type CostType string

const (
	CostTypeDL  CostType = "DL"  // Direct Labor
	CostTypeIL  CostType = "IL"  // Indirect Labor, add-ons folded in
	CostTypeMAT CostType = "MAT" // Materials
	CostTypeEQ  CostType = "EQ"  // Equipment
	CostTypeSUB CostType = "SUB" // Subcontracts
)

// Group is one canonical level-3 WBS group.
type Group struct {
	Code        string
	Description string
	// Parent groups commonly contain multiple disciplines (e.g. Piping,
	// Steel and Equipment all route to Mechanical) and therefore take one
	// sub-node per discipline instead of holding a discipline directly.
	Parent bool
}

// UnassignedGroupCode is the escape valve for discipline names that match no
// routing entry. Unmatched disciplines land here instead of dropping out of
// the tree.
const UnassignedGroupCode = "99"

// canonicalGroups is the fixed level-3 group set in its fixed sort order.
var canonicalGroups = []Group{
	{Code: "01", Description: "GENERAL STAFFING"},
	{Code: "02", Description: "SCAFFOLDING"},
	{Code: "03", Description: "CONSTRUCTION EQUIPMENT"},
	{Code: "04", Description: "FABRICATION"},
	{Code: "05", Description: "MOBILIZATION"},
	{Code: "06", Description: "CLEAN UP"},
	{Code: "07", Description: "BUILDING-REMODELING"},
	{Code: "08", Description: "CIVIL", Parent: true},
	{Code: "09", Description: "MECHANICAL", Parent: true},
	{Code: "10", Description: "I&E", Parent: true},
	{Code: "11", Description: "DEMOLITION"},
	{Code: "12", Description: "INSULATION"},
	{Code: "13", Description: "FIREPROOFING"},
	{Code: "14", Description: "PAINTING"},
}

var unassignedGroup = Group{Code: UnassignedGroupCode, Description: "UNASSIGNED"}

// disciplineGroups routes an uppercased discipline name to its group code.
// Routing is an explicit immutable table, not string matching, so the
// unassigned fallback is a visible case.
var disciplineGroups = map[string]string{
	"GENERAL STAFFING":             "01",
	"STAFFING":                     "01",
	"SCAFFOLDING":                  "02",
	"CONSTRUCTION EQUIPMENT":       "03",
	"EQUIPMENT RENTAL":             "03",
	"FABRICATION":                  "04",
	"SHOP FABRICATION":             "04",
	"MOBILIZATION":                 "05",
	"DEMOBILIZATION":               "05",
	"CLEAN UP":                     "06",
	"CLEANUP":                      "06",
	"BUILDING-REMODELING":          "07",
	"BUILDING REMODELING":          "07",
	"CIVIL":                        "08",
	"CONCRETE":                     "08",
	"GROUNDING":                    "08",
	"CIVIL - GROUNDING":            "08",
	"MECHANICAL":                   "09",
	"PIPING":                       "09",
	"PIPING DEMO":                  "09",
	"STEEL":                        "09",
	"STEEL DEMO":                   "09",
	"EQUIPMENT":                    "09",
	"EQUIPMENT DEMO":               "09",
	"I&E":                          "10",
	"INSTRUMENTATION":              "10",
	"ELECTRICAL":                   "10",
	"INSTRUMENTATION & ELECTRICAL": "10",
	"DEMOLITION":                   "11",
	"INSULATION":                   "12",
	"FIREPROOFING":                 "13",
	"PAINTING":                     "14",
}

// GroupForDiscipline returns the group code for a discipline name,
// case-insensitively. The second return is false when the name matched no
// routing entry and fell through to the unassigned group.
func GroupForDiscipline(name string) (string, bool) {
	code, ok := disciplineGroups[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return UnassignedGroupCode, false
	}
	return code, true
}

// GroupByCode returns the canonical group definition for a code.
func GroupByCode(code string) (Group, bool) {
	if code == UnassignedGroupCode {
		return unassignedGroup, true
	}
	for _, g := range canonicalGroups {
		if g.Code == code {
			return g, true
		}
	}
	return Group{}, false
}

// costCategory is one of the five fixed level-4 children of a budget leaf.
type costCategory struct {
	Type        CostType
	Code        string
	Description string
}

// costCategories is the fixed cost-category set in its fixed order. The
// two-digit codes double as code suffixes under a leaf.
var costCategories = []costCategory{
	{Type: CostTypeDL, Code: "01", Description: "DIRECT LABOR"},
	{Type: CostTypeIL, Code: "02", Description: "INDIRECT LABOR"},
	{Type: CostTypeMAT, Code: "03", Description: "MATERIALS"},
	{Type: CostTypeEQ, Code: "04", Description: "EQUIPMENT"},
	{Type: CostTypeSUB, Code: "05", Description: "SUBCONTRACTS"},
}

// categoryForType returns the category definition for a cost type.
func categoryForType(t CostType) (costCategory, bool) {
	for _, c := range costCategories {
		if c.Type == t {
			return c, true
		}
	}
	return costCategory{}, false
}

// LaborCategory is a level-5 labor line-item classification.
type LaborCategory struct {
	Code        string
	Description string
}

// laborCategories is the fixed line-item set under a labor cost category.
var laborCategories = []LaborCategory{
	{Code: "01", Description: "DIRECT"},
	{Code: "02", Description: "INDIRECT"},
	{Code: "03", Description: "STAFF"},
}

// materialSubtypes is the fixed line-item set under a materials category.
var materialSubtypes = []LaborCategory{
	{Code: "01", Description: "TAXED"},
	{Code: "02", Description: "TAXES"},
	{Code: "03", Description: "NON-TAXED"},
}
