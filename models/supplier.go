// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Supplier is a trading partner the company buys from.
// It is the only business entity exposed by the API.
type Supplier struct {
	// ID is the server-generated identifier (UUID v7 string).
	// Any value sent by the client on create or update is ignored.
	ID string `json:"id"`

	// Name is the supplier's registered or trade name.
	Name string `json:"nome"`

	// Document is the tax document number (CPF/CNPJ) of the supplier.
	Document string `json:"documento"`

	// Active reports whether the supplier is currently trading with us.
	Active bool `json:"ativo"`
}

// TableName returns the name of the database table
// associated with the Supplier model.
func (s Supplier) TableName() string {
	return "fornecedores"
}
