package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroflash/internal/model"
)

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyRegistry)
}

func TestNewValidatesDefinitions(t *testing.T) {
	valid := model.GameDefinition{
		Type:         model.GameReflex,
		Instruction:  map[string]string{"en": "TAP"},
		BaseDuration: time.Second,
	}

	cases := map[string][]model.GameDefinition{
		"no type":        {{Instruction: valid.Instruction, BaseDuration: time.Second}},
		"duplicate":      {valid, valid},
		"zero duration":  {{Type: model.GameMath, Instruction: valid.Instruction}},
		"no instruction": {{Type: model.GameMath, BaseDuration: time.Second}},
	}
	for name, defs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(defs)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestRegistryKeepsOrder(t *testing.T) {
	r := Default()

	require.Equal(t, len(DefaultDefinitions()), r.Len())
	for i, d := range DefaultDefinitions() {
		assert.Equal(t, d.Type, r.At(i).Type)
		idx, ok := r.IndexOf(d.Type)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
	_, ok := r.IndexOf("NOPE")
	assert.False(t, ok)
}

func TestRegistryIsolatedFromCaller(t *testing.T) {
	defs := []model.GameDefinition{{
		Type:         model.GameReflex,
		Instruction:  map[string]string{"en": "TAP"},
		BaseDuration: time.Second,
	}}
	r, err := New(defs)
	require.NoError(t, err)

	defs[0].Instruction["en"] = "CHANGED"
	defs[0].BaseDuration = time.Hour

	assert.Equal(t, "TAP", r.At(0).InstructionFor("en"))
	assert.Equal(t, time.Second, r.At(0).BaseDuration)
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "ru"}, Default().Languages())
}

func TestInstructionFallback(t *testing.T) {
	d := Default().At(0)
	assert.Equal(t, "ЖДИ... И ЖМИ!", d.InstructionFor("ru"))
	assert.Equal(t, "WAIT... THEN TAP!", d.InstructionFor("de"))

	only := model.GameDefinition{Type: model.GameSwipe, Instruction: map[string]string{"ru": "СВАЙПНИ!"}}
	assert.Equal(t, "СВАЙПНИ!", only.InstructionFor("en"))

	bare := model.GameDefinition{Type: model.GameSwipe}
	assert.Equal(t, "SWIPE", bare.InstructionFor("en"))
}
