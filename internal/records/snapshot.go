package records

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/clachance14/CostTrak-sub001/pkg/constants"
)

// ProjectSnapshot bundles one project's already-fetched record sets. It is
// the file-based stand-in for the data-acquisition boundary: the CLI loads a
// snapshot where a service would hand the engine rows from its store.
type ProjectSnapshot struct {
	ProjectID        string             `yaml:"projectId"`
	ProjectName      string             `yaml:"projectName"`
	OriginalContract float64            `yaml:"originalContract"`
	BaseMarginPct    float64            `yaml:"baseMarginPct"`
	Disciplines      []BudgetDiscipline `yaml:"disciplines"`
	PurchaseOrders   []PurchaseOrder    `yaml:"purchaseOrders"`
	ChangeOrders     []ChangeOrder      `yaml:"changeOrders"`
	CraftTypes       []CraftType        `yaml:"craftTypes"`
	LaborActuals     []LaborActual      `yaml:"laborActuals"`
	LaborForecasts   []LaborForecast    `yaml:"laborForecasts"`
	PerDiemCosts     []PerDiemCost      `yaml:"perDiemCosts"`
	PerDiem          PerDiemConfig      `yaml:"perDiem"`
}

// LoadSnapshot takes a file path as input and loads the YAML-formatted
// project snapshot there.
func LoadSnapshot(path string) (*ProjectSnapshot, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading snapshot file, %s", err)
	}

	// Work dates and week endings arrive as plain YYYY-MM-DD strings and
	// UUIDs as their canonical text form.
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(constants.WorkDateLayout),
		mapstructure.TextUnmarshallerHookFunc(),
	))

	var snapshot ProjectSnapshot
	if err := v.Unmarshal(&snapshot, hook); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &snapshot, nil
}

// RevisedContract is the original contract value plus approved change
// orders (BAC in the reporting glossary).
func (s *ProjectSnapshot) RevisedContract() float64 {
	return s.OriginalContract + ApprovedChangeOrderTotal(s.ChangeOrders)
}

// CraftTypeIndex builds an id-keyed lookup over the snapshot's craft types.
func (s *ProjectSnapshot) CraftTypeIndex() map[string]CraftType {
	index := make(map[string]CraftType, len(s.CraftTypes))
	for _, ct := range s.CraftTypes {
		index[ct.ID] = ct
	}
	return index
}
