package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPage_DeferredComputedOnlyWhenReferenced(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	computed := 0
	ctx := Context{
		"module_chmodes": DeferValue(func() any {
			computed++
			return []map[string]any{{"letter": "b", "module": "ban"}}
		}),
		"title": "Modes",
	}

	out, err := engine.RenderPage("# {{title}}\n\nNo mode index here.\n", ctx)
	require.NoError(t, err)
	require.Contains(t, out, "# Modes")
	require.Zero(t, computed, "unreferenced deferred binding must not be computed")

	out, err = engine.RenderPage("{{range module_chmodes}}{{.letter}}/{{.module}}{{end}}\n", ctx)
	require.NoError(t, err)
	require.Contains(t, out, "b/ban")
	require.Equal(t, 1, computed)
}

func TestRenderPage_DeferredErrorAbortsRender(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	ctx := Context{
		"module_chmodes": Defer(func() (any, error) {
			return nil, errors.New("aggregation failed")
		}),
	}

	_, err = engine.RenderPage("{{module_chmodes}}", ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "render page template")
}

func TestRenderPage_UnknownName_IsParseError(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	_, err = engine.RenderPage("{{never_bound}}", Context{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse page template")
}

func TestRenderPage_PlainMarkdownPassesThrough(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	input := "# Title\n\nJust prose with *emphasis*.\n"
	out, err := engine.RenderPage(input, Context{})
	require.NoError(t, err)
	require.Equal(t, input, out)
}

func TestRenderModule_RendersModesAndConfiguration(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	record := map[string]any{
		"name":        "banexception",
		"description": "Allows channel operators to exempt users from bans.",
		"chmodes": map[string]any{
			"chars": []any{
				map[string]any{"letter": "e", "name": "banexception", "description": "Exempts a mask"},
			},
		},
		"configuration": []any{
			map[string]any{
				"name":        "banexception",
				"description": "Tunes exception handling.",
				"attributes": []any{
					map[string]any{"name": "maxsize", "type": "number", "default": 64, "description": "List size"},
				},
			},
		},
	}

	out, err := engine.RenderModule(record)
	require.NoError(t, err)
	require.Contains(t, out, "# banexception Module")
	require.Contains(t, out, "Allows channel operators")
	require.Contains(t, out, "## Channel Modes")
	require.Contains(t, out, "| e | banexception | Exempts a mask |")
	require.Contains(t, out, "## Configuration")
	require.Contains(t, out, "| maxsize | number | 64 | List size |")
}

func TestRenderModule_SectionsOmittedWhenAbsent(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	out, err := engine.RenderModule(map[string]any{"name": "tiny"})
	require.NoError(t, err)
	require.Contains(t, out, "# tiny Module")
	require.NotContains(t, out, "## Channel Modes")
	require.NotContains(t, out, "## Configuration")
	require.NotContains(t, out, "## Server Notice Masks")
}
