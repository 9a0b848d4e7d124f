package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liveable/internal/score"
)

func testBatch() *score.Batch {
	return &score.Batch{
		Districts: map[string]*score.Composite{
			"Bishan": {
				District: "Bishan", Overall: 72, AirQuality: 83, Transport: 56,
				GreenSpace: 70, Amenities: 65, Safety: 85, EnvScore: 78, EnvClimate: 90,
			},
			"Tuas": {
				District: "Tuas", Overall: 45, AirQuality: 70, Transport: 40,
				GreenSpace: 40, Amenities: 35, Safety: 60, EnvScore: 55, EnvClimate: 70,
			},
		},
	}
}

func TestLoadRules_InvalidYAML(t *testing.T) {
	_, err := LoadRules([]byte("when: invalid yaml [[[[["))
	assert.Error(t, err)
}

func TestLoadRules_UnknownVariable(t *testing.T) {
	script := `
- when: "unknownField > 1"
  then:
    level: warning
    message: "nope"
`
	_, err := LoadRules([]byte(script))
	assert.Error(t, err, "rules referencing undeclared variables must fail at compile time")
}

func TestLoadRules_EmptyScript(t *testing.T) {
	rules, err := LoadRules([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestEvaluate_MatchingRule(t *testing.T) {
	script := `
- when: overall < 50
  then:
    level: warning
    message: "Low liveability"
`
	rules, err := LoadRules([]byte(script))
	require.NoError(t, err)

	alerts := NewEvaluator(rules).Evaluate(testBatch())
	require.Len(t, alerts, 1)
	assert.Equal(t, "Tuas", alerts[0].District)
	assert.Equal(t, "warning", alerts[0].Level)
	assert.Equal(t, "Low liveability", alerts[0].Message)
}

func TestEvaluate_MultipleRulesAndDistricts(t *testing.T) {
	script := `
- when: safety < 70
  then:
    level: warning
    message: "Safety below threshold"
- when: envScore > 70 && region == "central"
  then:
    level: info
    message: "Strong environmental outcomes"
`
	rules, err := LoadRules([]byte(script))
	require.NoError(t, err)

	alerts := NewEvaluator(rules).Evaluate(testBatch())
	require.Len(t, alerts, 2)
	// Ordered by district name.
	assert.Equal(t, "Bishan", alerts[0].District)
	assert.Equal(t, "info", alerts[0].Level)
	assert.Equal(t, "Tuas", alerts[1].District)
	assert.Equal(t, "warning", alerts[1].Level)
}

func TestEvaluate_NoMatches(t *testing.T) {
	script := `
- when: overall < 10
  then:
    level: critical
    message: "unreachable"
`
	rules, err := LoadRules([]byte(script))
	require.NoError(t, err)

	alerts := NewEvaluator(rules).Evaluate(testBatch())
	assert.Empty(t, alerts)
}

func TestEvaluate_DistrictVariable(t *testing.T) {
	script := `
- when: district == "Bishan" && transport >= 50
  then:
    level: info
    message: "Well connected"
`
	rules, err := LoadRules([]byte(script))
	require.NoError(t, err)

	alerts := NewEvaluator(rules).Evaluate(testBatch())
	require.Len(t, alerts, 1)
	assert.Equal(t, "Bishan", alerts[0].District)
}

func TestEvaluate_NilBatch(t *testing.T) {
	alerts := NewEvaluator(nil).Evaluate(nil)
	assert.Empty(t, alerts)
}
