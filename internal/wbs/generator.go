// Package wbs generates the fixed 5-level Work Breakdown Structure used to
// file every budget line item: project total, construction phase, canonical
// discipline groups, cost categories, and optional line items.
package wbs

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clachance14/CostTrak-sub001/internal/records"
)

const (
	// MaxLevel is the depth cap of the coding scheme.
	MaxLevel = 5

	rootCode  = "1"
	phaseCode = "1.1"

	rootDescription  = "PROJECT TOTAL"
	phaseDescription = "CONSTRUCTION PHASE"

	// sortGapPerCategory reserves room after each category node so its
	// line items can be inserted later without renumbering.
	sortGapPerCategory = 10
)

// Node is one node of the WBS tree, handed to a persistence collaborator
// after generation.
type Node struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	ParentCode  string    `json:"parentCode"`
	Level       int       `json:"level"`
	Description string    `json:"description"`
	CostType    CostType  `json:"costType,omitempty"`
	Path        []string  `json:"path"`
	SortOrder   int       `json:"sortOrder"`
	BudgetTotal float64   `json:"budgetTotal"`
}

// Generator builds WBS trees from discipline budgets.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new generator with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate maps a flat list of budget disciplines into the 5-level tree:
// one root, one construction phase, the fixed group set in fixed order,
// discipline sub-nodes under the parent groups, and five cost-category
// children per budget leaf. Aggregate spreadsheet rows are skipped;
// disciplines matching no routing entry land in the unassigned group.
func (g *Generator) Generate(disciplines []records.BudgetDiscipline) ([]Node, error) {
	routed := g.route(disciplines)

	var nodes []Node
	sortOrder := 1

	root := Node{
		ID:          uuid.New(),
		Code:        rootCode,
		Level:       1,
		Description: rootDescription,
		Path:        []string{rootCode},
		SortOrder:   sortOrder,
	}
	sortOrder++

	phase := Node{
		ID:          uuid.New(),
		Code:        phaseCode,
		ParentCode:  rootCode,
		Level:       2,
		Description: phaseDescription,
		Path:        []string{rootCode, phaseCode},
		SortOrder:   sortOrder,
	}
	sortOrder++

	nodes = append(nodes, root, phase)

	groups := canonicalGroups
	if len(routed[UnassignedGroupCode]) > 0 {
		groups = append(append([]Group{}, canonicalGroups...), unassignedGroup)
	}

	for _, group := range groups {
		members := routed[group.Code]

		groupIdx := len(nodes)
		nodes = append(nodes, Node{
			ID:          uuid.New(),
			Code:        phaseCode + "." + group.Code,
			ParentCode:  phaseCode,
			Level:       3,
			Description: group.Code + " " + group.Description,
			Path:        childPath(phase.Path, phaseCode+"."+group.Code),
			SortOrder:   sortOrder,
		})
		sortOrder++

		if group.Parent || len(members) > 1 {
			// One sub-node per discipline; a non-parent group receiving
			// more than one discipline degrades to the same shape rather
			// than dropping rows.
			if !group.Parent && len(members) > 1 {
				g.logger.Warn("multiple disciplines routed to non-parent group",
					zap.String("op", "wbs.Generate"),
					zap.String("group", group.Code),
					zap.Int("disciplines", len(members)),
				)
			}
			for i, d := range members {
				subCode := fmt.Sprintf("%s.%02d", nodes[groupIdx].Code, i+1)
				subIdx := len(nodes)
				nodes = append(nodes, Node{
					ID:          uuid.New(),
					Code:        subCode,
					ParentCode:  nodes[groupIdx].Code,
					Level:       4,
					Description: strings.ToUpper(strings.TrimSpace(d.Name)),
					Path:        childPath(nodes[groupIdx].Path, subCode),
					SortOrder:   sortOrder,
				})
				sortOrder++

				categories := g.categoryNodes(nodes[subIdx], d, &sortOrder)
				nodes[subIdx].BudgetTotal = sumTotals(categories)
				nodes[groupIdx].BudgetTotal += nodes[subIdx].BudgetTotal
				nodes = append(nodes, categories...)
			}
		} else if len(members) == 1 {
			categories := g.categoryNodes(nodes[groupIdx], members[0], &sortOrder)
			nodes[groupIdx].BudgetTotal = sumTotals(categories)
			nodes = append(nodes, categories...)
		}

		nodes[1].BudgetTotal += nodes[groupIdx].BudgetTotal
	}

	// Roll the phase total up to the root.
	nodes[0].BudgetTotal = nodes[1].BudgetTotal

	return nodes, nil
}

// route buckets disciplines by group code, preserving input order and
// skipping spreadsheet aggregate rows.
func (g *Generator) route(disciplines []records.BudgetDiscipline) map[string][]records.BudgetDiscipline {
	routed := make(map[string][]records.BudgetDiscipline)
	for _, d := range disciplines {
		if d.IsAggregateRow() {
			g.logger.Debug("skipping aggregate row",
				zap.String("op", "wbs.route"),
				zap.String("discipline", d.Name),
			)
			continue
		}
		code, matched := GroupForDiscipline(d.Name)
		if !matched {
			g.logger.Debug("discipline matched no group, routing to unassigned",
				zap.String("op", "wbs.route"),
				zap.String("discipline", d.Name),
			)
		}
		routed[code] = append(routed[code], d)
	}
	return routed
}

// categoryNodes builds the five fixed cost-category children for a budget
// leaf. Categories are never skipped for being empty: a zero budget still
// produces a node. Each category claims its own slot plus a reserved block of
// line-item slots immediately after it, so level-5 line items built later
// slot in under their category without renumbering any existing node.
func (g *Generator) categoryNodes(parent Node, d records.BudgetDiscipline, sortOrder *int) []Node {
	nodes := make([]Node, 0, len(costCategories))
	for _, cat := range costCategories {
		code := parent.Code + "." + cat.Code
		nodes = append(nodes, Node{
			ID:          uuid.New(),
			Code:        code,
			ParentCode:  parent.Code,
			Level:       parent.Level + 1,
			Description: cat.Description,
			CostType:    cat.Type,
			Path:        childPath(parent.Path, code),
			SortOrder:   *sortOrder,
			BudgetTotal: categoryBudget(d, cat.Type),
		})
		*sortOrder += sortGapPerCategory + 1
	}
	return nodes
}

// categoryBudget pulls one category's budget total from a discipline.
// Indirect labor folds the add-ons in; everything else maps directly.
func categoryBudget(d records.BudgetDiscipline, t CostType) float64 {
	switch t {
	case CostTypeDL:
		return d.DirectLabor.Value
	case CostTypeIL:
		return d.IndirectLabor.Value + d.AddOns.Total()
	case CostTypeMAT:
		return d.Materials.Value
	case CostTypeEQ:
		return d.Equipment.Value
	case CostTypeSUB:
		return d.Subcontracts.Value
	}
	return 0
}

// CodeForItem derives the WBS code for a discipline/cost-type pair without
// building the whole tree, using the same routing and category tables as
// Generate. An optional labor-category code appends the level-5 suffix.
// Parent-group sub-discipline slots are positional and therefore not
// derivable without the full tree; for those groups the code addresses the
// group-level category.
func CodeForItem(disciplineName string, costType CostType, laborCategoryCode ...string) (string, error) {
	groupCode, _ := GroupForDiscipline(disciplineName)
	cat, ok := categoryForType(costType)
	if !ok {
		return "", fmt.Errorf("unknown cost type %q", costType)
	}

	code := phaseCode + "." + groupCode + "." + cat.Code
	if len(laborCategoryCode) > 0 && laborCategoryCode[0] != "" {
		if costType != CostTypeDL && costType != CostTypeIL {
			return "", fmt.Errorf("labor category code applies only to labor cost types, got %q", costType)
		}
		code = code + "." + laborCategoryCode[0]
	}
	return code, nil
}

func childPath(parentPath []string, code string) []string {
	path := make([]string, 0, len(parentPath)+1)
	path = append(path, parentPath...)
	return append(path, code)
}

func sumTotals(nodes []Node) float64 {
	total := 0.0
	for _, n := range nodes {
		total += n.BudgetTotal
	}
	return total
}
