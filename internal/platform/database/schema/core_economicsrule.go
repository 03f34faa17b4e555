package schema

// CoreEconomicsRuleTable represents the 'core.economicsrule' table
type CoreEconomicsRuleTable struct {
	Table      string
	ID         string
	OwnerType  string
	OwnerID    string
	Concept    string
	Percentage string
	BaseAmount string
	CreatedAt  string
	UpdatedAt  string
}

// CoreEconomicsRule is the schema definition for core.economicsrule
var CoreEconomicsRule = CoreEconomicsRuleTable{
	Table:      "core.economicsrule",
	ID:         "id",
	OwnerType:  "ownertype",
	OwnerID:    "ownerid",
	Concept:    "concept",
	Percentage: "percentage",
	BaseAmount: "baseamount",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CoreEconomicsRuleTable) Columns() []string {
	return []string{t.ID, t.OwnerType, t.OwnerID, t.Concept, t.Percentage, t.BaseAmount, t.CreatedAt, t.UpdatedAt}
}
