package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
)

func noEdits(*format.Snapshot) []fix.TextEdit { return nil }

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := format.NewRegistry()
	reg.Register(newFuncRule("SC601", format.StageCleanup, noEdits))
	reg.Register(newFuncRule("SC302", format.StageSpacing, noEdits))
	reg.Register(newFuncRule("SC101", format.StageStructural, noEdits))
	reg.Register(newFuncRule("SC301", format.StageSpacing, noEdits))

	assert.Equal(t, 4, reg.Len())
	assert.Equal(t, []string{"SC101", "SC301", "SC302", "SC601"}, reg.IDs())

	rule, ok := reg.Get("rule-sc302")
	require.True(t, ok)
	assert.Equal(t, "SC302", rule.ID())

	id, ok := reg.Resolve("SC601")
	require.True(t, ok)
	assert.Equal(t, "SC601", id)

	_, ok = reg.Get("nonexistent")
	assert.False(t, ok)

	replacement := newFuncRule("SC301", format.StageSpacing, noEdits)
	replacement.BaseRule = format.NewBaseRule("SC301", "renamed", "", format.StageSpacing)
	reg.Register(replacement)
	assert.Equal(t, 4, reg.Len())
	_, ok = reg.Get("rule-sc301")
	assert.False(t, ok, "old name is forgotten on replace")
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	optIn := newFuncRule("SC306", format.StageSpacing, noEdits)
	optIn.enabled = false

	reg := format.NewRegistry()
	reg.Register(newFuncRule("SC301", format.StageSpacing, noEdits))
	reg.Register(optIn)
	reg.Register(newFuncRule("SC602", format.StageCleanup, noEdits))

	ids := func(rules []format.Rule) []string {
		out := make([]string, 0, len(rules))
		for _, r := range rules {
			out = append(out, r.ID())
		}
		return out
	}

	enabled, disabled := true, false

	tests := []struct {
		name   string
		cfg    *config.Config
		stages []format.Stage
		want   []string
	}{
		{name: "defaults", want: []string{"SC301", "SC602"}},
		{
			name: "rules map",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"SC306": {Enabled: &enabled},
				"SC602": {Enabled: &disabled},
			}},
			want: []string{"SC301", "SC306"},
		},
		{
			name: "cli lists by id and name",
			cfg:  &config.Config{EnableRules: []string{"rule-sc306"}, DisableRules: []string{"SC301"}},
			want: []string{"SC306", "SC602"},
		},
		{
			name: "disable wins over enable",
			cfg:  &config.Config{EnableRules: []string{"SC306"}, DisableRules: []string{"SC306"}},
			want: []string{"SC301", "SC602"},
		},
		{
			name:   "stage filter",
			stages: []format.Stage{format.StageCleanup},
			want:   []string{"SC602"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(format.ResolveRules(reg, tt.cfg, tt.stages)))
		})
	}
}

func TestStage(t *testing.T) {
	t.Parallel()

	for _, s := range format.AllStages() {
		parsed, err := format.ParseStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "stage(42)", format.Stage(42).String())
	_, err := format.ParseStage("polish")
	require.Error(t, err)
}

func TestParsePhase(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"pre", "inline", "post", "all"} {
		phase, err := format.ParsePhase(name)
		require.NoError(t, err)
		assert.Equal(t, format.Phase(name), phase)
	}

	phase, err := format.ParsePhase("")
	require.NoError(t, err)
	assert.Equal(t, format.PhaseInline, phase)

	_, err = format.ParsePhase("middle")
	require.ErrorIs(t, err, format.ErrUnknownPhase)

	assert.True(t, format.PhaseAll.RunsPipeline())
	assert.False(t, format.PhasePre.RunsPipeline())
}

func TestIndentStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "    ", format.DefaultIndent().Unit())
	assert.Equal(t, "    ", format.IndentStyle{}.Unit(), "zero value is four spaces")
	assert.Equal(t, "\t\t", format.TabsIndent().Repeat(2))
	assert.Equal(t, "      ", format.SpacesIndent(2).Repeat(3))
	assert.Empty(t, format.SpacesIndent(2).Repeat(-1))

	assert.Equal(t, 2, format.DefaultIndent().Level("        "))
	assert.Equal(t, 1, format.DefaultIndent().Level("\t  "))
	assert.Equal(t, "tabs", format.TabsIndent().String())
	assert.Equal(t, "2 spaces", format.SpacesIndent(2).String())

	style := format.IndentFromConfig(config.IndentConfig{Style: config.IndentSpaces})
	assert.Equal(t, 4, style.Width)
}
