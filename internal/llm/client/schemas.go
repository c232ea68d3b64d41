package client

import "google.golang.org/genai"

// Schema names a structured reply shape understood by GenerateStructured.
type Schema string

const (
	SchemaSWOT    Schema = "swot"
	SchemaRoadmap Schema = "roadmap"
	SchemaKanban  Schema = "kanban"
)

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

var swotSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"strengths":     stringList(),
		"weaknesses":    stringList(),
		"opportunities": stringList(),
		"threats":       stringList(),
	},
	Required: []string{"strengths", "weaknesses", "opportunities", "threats"},
}

var roadmapSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title": {Type: genai.TypeString},
		"phases": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"phaseName":  {Type: genai.TypeString},
					"milestones": stringList(),
					"duration":   {Type: genai.TypeString},
				},
				Required: []string{"phaseName", "milestones", "duration"},
			},
		},
	},
	Required: []string{"title", "phases"},
}

// The response schema has no map type, so the board is requested as lists
// and assembled by kanban.FromProposal.
var kanbanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"tasks": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":      {Type: genai.TypeString},
					"content": {Type: genai.TypeString},
				},
				Required: []string{"id", "content"},
			},
		},
		"columns": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":      {Type: genai.TypeString},
					"title":   {Type: genai.TypeString},
					"taskIds": stringList(),
				},
				Required: []string{"id", "title", "taskIds"},
			},
		},
		"columnOrder": stringList(),
	},
	Required: []string{"tasks", "columns", "columnOrder"},
}

func schemaFor(s Schema) *genai.Schema {
	switch s {
	case SchemaSWOT:
		return swotSchema
	case SchemaRoadmap:
		return roadmapSchema
	case SchemaKanban:
		return kanbanSchema
	}
	return nil
}
