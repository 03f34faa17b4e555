package schema

// CorePartyTable represents the 'core.party' table
type CorePartyTable struct {
	Table           string
	ID              string
	Kind            string
	DisplayNick     string
	DisplayNickNorm string
	LegalName       string
	LegalNameNorm   string
	TaxID           string
	Email           string
	Phone           string
	LinkedOwnerID   string
	IsActive        string
	IsDeleted       string
	CreatedAt       string
	UpdatedAt       string
}

// CoreParty is the schema definition for core.party
var CoreParty = CorePartyTable{
	Table:           "core.party",
	ID:              "id",
	Kind:            "kind",
	DisplayNick:     "displaynick",
	DisplayNickNorm: "displaynicknorm",
	LegalName:       "legalname",
	LegalNameNorm:   "legalnamenorm",
	TaxID:           "taxid",
	Email:           "email",
	Phone:           "phone",
	LinkedOwnerID:   "linkedownerid",
	IsActive:        "isactive",
	IsDeleted:       "isdeleted",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// SelectColumns lists the columns scanned into a party entity, in scan order.
func (t CorePartyTable) SelectColumns() []string {
	return []string{
		t.ID, t.Kind, t.DisplayNick, t.LegalName, t.TaxID, t.Email, t.Phone,
		t.LinkedOwnerID, t.IsActive, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
	}
}
