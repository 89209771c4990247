package types_test

import (
	"testing"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestConfigParameterValidate(t *testing.T) {
	tests := []struct {
		name    string
		param   types.ConfigParameter
		wantErr bool
	}{
		{"text", types.ConfigParameter{Name: "port", Type: types.TypeText}, false},
		{"radio with choices", types.ConfigParameter{Name: "db", Type: types.TypeRadio, Choices: []types.Choice{{Value: "pg"}}}, false},
		{"missing name", types.ConfigParameter{Type: types.TypeText}, true},
		{"unknown type", types.ConfigParameter{Name: "x", Type: "slider"}, true},
		{"radio without choices", types.ConfigParameter{Name: "db", Type: types.TypeRadio}, true},
		{"checkbox without choices", types.ConfigParameter{Name: "features", Type: types.TypeCheckbox}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.param.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrParameterInvalid), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigParameterHelpers(t *testing.T) {
	p := types.ConfigParameter{
		Name: "features",
		Type: types.TypeCheckbox,
		Choices: []types.Choice{
			{Value: "db", Checked: true},
			{Value: "twing"},
			{Value: "logger", Checked: true},
		},
	}
	assert.Equal(t, []string{"db", "logger"}, p.CheckedValues())
	assert.Equal(t, "features", p.Prompt())

	p.Description = "Select features"
	assert.Equal(t, "Select features", p.Prompt())
}
