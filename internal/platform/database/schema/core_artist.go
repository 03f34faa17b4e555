package schema

// CoreArtistTable names the columns of core.artist, the agency roster.
type CoreArtistTable struct {
	Table     string
	ID        string
	StageName string
	LegalName string
	TaxID     string
	Email     string
	Phone     string
	IBAN      string
	IsActive  string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// CoreArtist is the schema definition for core.artist
var CoreArtist = CoreArtistTable{
	Table:     "core.artist",
	ID:        "id",
	StageName: "stagename",
	LegalName: "legalname",
	TaxID:     "taxid",
	Email:     "email",
	Phone:     "phone",
	IBAN:      "iban",
	IsActive:  "isactive",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// SelectColumns lists the columns scanned into an artist entity, in scan order.
func (t CoreArtistTable) SelectColumns() []string {
	return []string{
		t.ID, t.StageName, t.LegalName, t.TaxID, t.Email, t.Phone, t.IBAN,
		t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
