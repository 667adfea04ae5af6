package wbs

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// LaborLineItems builds the fixed per-labor-category line items under a
// labor cost-category node. Sort orders slot into the block Generate reserved
// immediately after the parent category node, so existing nodes never
// renumber.
func LaborLineItems(parent Node) ([]Node, error) {
	if parent.CostType != CostTypeDL && parent.CostType != CostTypeIL {
		return nil, fmt.Errorf("labor line items require a DL or IL parent, got %q", parent.CostType)
	}
	return lineItems(parent, laborCategories)
}

// MaterialLineItems builds the fixed material-subtype line items (Taxed,
// Taxes, Non-Taxed) under a materials cost-category node.
func MaterialLineItems(parent Node) ([]Node, error) {
	if parent.CostType != CostTypeMAT {
		return nil, fmt.Errorf("material line items require a MAT parent, got %q", parent.CostType)
	}
	return lineItems(parent, materialSubtypes)
}

func lineItems(parent Node, categories []LaborCategory) ([]Node, error) {
	if parent.Level+1 > MaxLevel {
		return nil, fmt.Errorf("node %s is at level %d, line items would exceed the %d-level scheme",
			parent.Code, parent.Level, MaxLevel)
	}

	nodes := make([]Node, 0, len(categories))
	for i, cat := range categories {
		code := parent.Code + "." + cat.Code
		nodes = append(nodes, Node{
			ID:          uuid.New(),
			Code:        code,
			ParentCode:  parent.Code,
			Level:       parent.Level + 1,
			Description: cat.Description,
			CostType:    parent.CostType,
			Path:        childPath(parent.Path, code),
			SortOrder:   parent.SortOrder + i + 1,
		})
	}
	return nodes, nil
}

// ValidateTree checks the structural invariants of a generated tree and
// returns a description of each violation. A clean tree returns nil.
func ValidateTree(nodes []Node) []string {
	var problems []string

	byCode := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if _, dup := byCode[n.Code]; dup {
			problems = append(problems, fmt.Sprintf("duplicate code %s", n.Code))
			continue
		}
		byCode[n.Code] = n
	}

	for _, n := range nodes {
		if len(n.Path) != n.Level {
			problems = append(problems, fmt.Sprintf("node %s: path length %d != level %d", n.Code, len(n.Path), n.Level))
		}
		if n.Level < 1 || n.Level > MaxLevel {
			problems = append(problems, fmt.Sprintf("node %s: level %d outside [1, %d]", n.Code, n.Level, MaxLevel))
		}
		if n.ParentCode == "" {
			continue
		}
		parent, ok := byCode[n.ParentCode]
		if !ok {
			problems = append(problems, fmt.Sprintf("node %s: parent %s not in tree", n.Code, n.ParentCode))
			continue
		}
		if !strings.HasPrefix(n.Code, parent.Code+".") {
			problems = append(problems, fmt.Sprintf("node %s: code does not extend parent code %s", n.Code, parent.Code))
		}
		if n.Level != parent.Level+1 {
			problems = append(problems, fmt.Sprintf("node %s: level %d is not parent level %d + 1", n.Code, n.Level, parent.Level))
		}
	}

	return problems
}
