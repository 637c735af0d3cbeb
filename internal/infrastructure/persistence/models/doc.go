// Package models contains the GORM persistence models for the ledger tables.
// Models carry the ORM tags and table mappings; domain entities stay free of them.
// Each model converts with ToDomain and a FromDomain constructor.
//
// Company-scoped tables carry a company_id column that every repository query filters on.
package models
