package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `
workflows:
  - name: deploy-netlify
    file: deploy-to-netlify.yml
    ref: main
    inputs:
      - repository_url
      - netlify_site_id
  - name: clone-machine
    file: clone.yml
    inputs:
      - source_repo_url
`

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)

	wf, ok := catalog.Get("deploy-netlify")
	require.True(t, ok)
	assert.Equal(t, "deploy-to-netlify.yml", wf.File)
	assert.Equal(t, "main", wf.Ref)

	// ref缺省为main
	wf, ok = catalog.Get("clone-machine")
	require.True(t, ok)
	assert.Equal(t, "main", wf.Ref)

	_, ok = catalog.Get("unknown")
	assert.False(t, ok)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"空清单", "workflows: []"},
		{"缺少file", "workflows:\n  - name: x"},
		{"缺少name", "workflows:\n  - file: x.yml"},
		{"非法YAML", "workflows: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestWorkflow_ValidateInputs(t *testing.T) {
	wf := Workflow{
		Name:   "deploy-netlify",
		Inputs: []string{"repository_url", "netlify_site_id"},
	}

	err := wf.ValidateInputs(map[string]string{
		"repository_url":  "https://github.com/acme/app",
		"netlify_site_id": "site-1",
	})
	assert.NoError(t, err)

	err = wf.ValidateInputs(map[string]string{
		"repository_url": "https://github.com/acme/app",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netlify_site_id")
}
