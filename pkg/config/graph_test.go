package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func configWith(deps map[string][]string) *Config {
	services := make(map[string]Service, len(deps))
	for name, dep := range deps {
		services[name] = Service{Command: "true", DependsOn: dep}
	}
	return &Config{Services: services}
}

func TestValidate_OK(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": nil,
	})
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingDependency(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": {"nope"},
	})
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), `"a"`)
	require.Contains(t, err.Error(), `"nope"`)
}

func TestValidate_TwoNodeCycle(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": {"b"},
		"b": {"a"},
	})
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "circular dependency")
}

func TestValidate_SelfCycle(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": {"a"},
	})
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "a -> a")
}

func TestValidate_CycleInDisconnectedComponent(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": nil,
		"x": {"y"},
		"y": {"z"},
		"z": {"x"},
	})
	require.Error(t, cfg.Validate())
}

func TestResolveTransitive_Chain(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": nil,
		"d": nil,
	})
	require.Equal(t, []string{"a", "b", "c"}, cfg.ResolveTransitive([]string{"a"}))
}

func TestResolveTransitive_OrderIndependent(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": {"c"},
		"b": {"c"},
		"c": nil,
	})
	first := cfg.ResolveTransitive([]string{"a", "b"})
	second := cfg.ResolveTransitive([]string{"b", "a"})
	require.Equal(t, first, second)
	require.Equal(t, []string{"a", "b", "c"}, first)
}

func TestResolveTransitive_Idempotent(t *testing.T) {
	cfg := configWith(map[string][]string{
		"a": {"b"},
		"b": nil,
	})
	once := cfg.ResolveTransitive([]string{"a"})
	again := cfg.ResolveTransitive(once)
	require.Equal(t, once, again)
}

func TestDependentsOf(t *testing.T) {
	cfg := configWith(map[string][]string{
		"db":     nil,
		"api":    {"db"},
		"worker": {"db", "api"},
		"web":    {"api"},
	})
	require.Equal(t, []string{"api", "worker"}, cfg.DependentsOf("db"))
	require.Equal(t, []string{"web", "worker"}, cfg.DependentsOf("api"))
	require.Empty(t, cfg.DependentsOf("web"))
}
