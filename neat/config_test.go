package neat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigINI(t *testing.T) {
	path := writeConfig(t, "run.ini", `
; training run
[Run]
population_size = 300
target_fitness  = 15.5
max_generations = 120
activation      = Tanh
workers         = 4
elitism         = true
seed            = 42

[Settings]
GENE_DISABLE_CHANCE            = 0.5
species_compatibility_distance = 1.25   # the bigger the fewer species
species_max_stagnation         = 20
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, RunConfig{
		PopulationSize: 300,
		TargetFitness:  15.5,
		MaxGenerations: 120,
		Activation:     "Tanh",
		Workers:        4,
		Elitism:        true,
		Seed:           42,
	}, cfg.Run)
	assert.Equal(t, 0.5, cfg.Settings.Get(GeneDisableChance))
	assert.Equal(t, 1.25, cfg.Settings.Get(SpeciesCompatibilityDistance))
	assert.Equal(t, 20.0, cfg.Settings.Get(SpeciesMaxStagnation))
	assert.Equal(t, BreedCrossChance.Default(), cfg.Settings.Get(BreedCrossChance), "unset keys keep their default")

	fn, err := cfg.ActivationFunc()
	require.NoError(t, err)
	assert.Equal(t, Tanh(0.5), fn(0.5))
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "run.yaml", `
run:
  population_size: 80
  target_fitness: 3.9
  activation: relu
settings:
  mutation_new_node_chance: 0.2
  breed_cross_chance: 0.5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Run.PopulationSize)
	assert.Equal(t, 3.9, cfg.Run.TargetFitness)
	assert.Equal(t, "relu", cfg.Run.Activation)
	assert.Equal(t, 1, cfg.Run.Workers, "missing keys keep their default")
	assert.Equal(t, 0.2, cfg.Settings.Get(MutationNewNodeChance))
	assert.Equal(t, 0.5, cfg.Settings.Get(BreedCrossChance))
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown ini setting", "a.ini", "[Settings]\nmutation_rate = 0.1\n", "unknown setting 'mutation_rate'"},
		{"unknown yaml setting", "a.yaml", "settings:\n  mutation_rate: 0.1\n", "unknown setting 'mutation_rate'"},
		{"probability out of range", "a.ini", "[Settings]\nbreed_cross_chance = 1.5\n", "breed_cross_chance must be between 0 and 1"},
		{"negative range", "a.yml", "settings:\n  mutation_weight_chance_random_range: -1\n", "cannot be negative"},
		{"not a number", "a.ini", "[Settings]\nbreed_cross_chance = often\n", "breed_cross_chance"},
		{"unknown activation", "a.ini", "[Run]\nactivation = softmax\n", "unknown activation function"},
		{"empty population", "a.ini", "[Run]\npopulation_size = 0\n", "population_size"},
		{"negative workers", "a.yaml", "run:\n  workers: -2\n", "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.Workers = 3
	cfg.Run.Elitism = true
	cfg.Run.MaxGenerations = 25
	cfg.Run.Seed = 9
	require.NoError(t, cfg.Settings.Set(BreedCrossChance, 0.4))

	act, err := cfg.ActivationFunc()
	require.NoError(t, err)
	e, err := New(2, 1, act, constantFitness(1), append(cfg.Options(), WithLogger(discard))...)
	require.NoError(t, err)

	assert.Equal(t, 3, e.workers)
	assert.True(t, e.elitism)
	assert.Equal(t, 25, e.maxGenerations)
	assert.Equal(t, 0.4, e.Setting(BreedCrossChance))

	e.SetSetting(BreedCrossChance, 0.9)
	assert.Equal(t, 0.4, cfg.Settings.Get(BreedCrossChance), "the engine works on its own copy")
}

func TestCleanIniString(t *testing.T) {
	assert.Equal(t, "1.25", cleanIniString(" 1.25   # comment"))
	assert.Equal(t, "sigmoid", cleanIniString("sigmoid ; note"))
	assert.Equal(t, "", cleanIniString("   "))
}
