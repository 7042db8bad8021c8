package models

import "time"

// IngestionRecord is one row of the dictionaries catalog: a protocol version
// imported from a spec file and persisted.
//
// swagger:model IngestionRecord
type IngestionRecord struct {
	Version        string    `json:"version" example:"FIX.4.4"`
	SourceFile     string    `json:"source_file" example:"FIX44.xml"`
	FieldCount     int       `json:"field_count" example:"912"`
	MessageCount   int       `json:"message_count" example:"93"`
	ComponentCount int       `json:"component_count" example:"106"`
	IngestedAt     time.Time `json:"ingested_at"`
}
