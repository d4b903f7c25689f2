// Package schemas embeds the JSON Schema documents for the engine's input files.
package schemas

import "embed"

// File names of the embedded schemas
const (
	TemplateSchemaFile = "template_schema.schema.json"
	ResumeDataFile     = "resume_data.schema.json"
)

// FS holds every *.schema.json in this directory
//
//go:embed *.schema.json
var FS embed.FS
