package models

// Claim is a named attribute asserting a permission or identity fact.
type Claim struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Well-known claim types.
const (
	// ClaimTypeRole marks a claim that carries a role name.
	ClaimTypeRole = "role"

	// ClaimDeleteSupplier grants permission to delete suppliers.
	ClaimDeleteSupplier = "ExcluirFornecedor"
)
