package schemas

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	TemplateSchemaFile,
	ResumeDataFile,
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON: %s", schemaFile)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
			assert.Equal(t, "object", v["type"])
			assert.Contains(t, v, "properties")
		})
	}
}

func TestEmbeddedFS_MatchesDisk(t *testing.T) {
	embedded, err := fs.Glob(FS, "*.schema.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, schemaFiles, embedded)

	for _, name := range schemaFiles {
		onDisk, err := os.ReadFile(name)
		require.NoError(t, err)
		inFS, err := FS.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, onDisk, inFS)
	}
}

func TestTemplateSchema_SectionEnum(t *testing.T) {
	data, err := os.ReadFile(TemplateSchemaFile)
	require.NoError(t, err)

	var schema struct {
		Properties struct {
			Sections struct {
				Items struct {
					Properties struct {
						Type struct {
							Enum []string `json:"enum"`
						} `json:"type"`
					} `json:"properties"`
				} `json:"items"`
			} `json:"sections"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, []string{
		"summary", "experience", "education", "skills",
		"projects", "certifications", "languages", "custom",
	}, schema.Properties.Sections.Items.Properties.Type.Enum)
}
