package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardValidators(t *testing.T) {
	assert.NoError(t, validateDate("2025-01-06"))
	assert.Error(t, validateDate(""))
	assert.Error(t, validateDate("06-01-2025"))

	assert.NoError(t, validateOptionalDate(""))
	assert.Error(t, validateOptionalDate("soon"))

	assert.NoError(t, validatePositiveFloat("100000"))
	assert.Error(t, validatePositiveFloat("0"))
	assert.Error(t, validatePositiveFloat("abc"))

	assert.NoError(t, validateNonNegativeFloat(""))
	assert.NoError(t, validateNonNegativeFloat("0"))
	assert.Error(t, validateNonNegativeFloat("-1"))

	assert.NoError(t, validateOptionalPositiveInt(""))
	assert.NoError(t, validateOptionalPositiveInt("3"))
	assert.Error(t, validateOptionalPositiveInt("0"))
	assert.Error(t, validateOptionalPositiveInt("1.5"))

	assert.Error(t, validateRequired("name")("  "))
	assert.NoError(t, validateRequired("name")("Piling"))
}

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = parseAmount(" 250.5 ")
	require.NoError(t, err)
	assert.Equal(t, 250.5, v)

	for _, bad := range []string{"NaN", "Inf", "-inf", "12k"} {
		_, err := parseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestAmountValidators_RejectNonFinite(t *testing.T) {
	assert.Error(t, validatePositiveFloat("NaN"))
	assert.Error(t, validatePositiveFloat("Inf"))
	assert.Error(t, validateNonNegativeFloat("NaN"))
	assert.Error(t, validateNonNegativeFloat("+Inf"))
	assert.NoError(t, validateNonNegativeFloat(""))
}

func TestForms_Build(t *testing.T) {
	assert.NotNil(t, milestoneForm(&milestoneAnswers{}))
	assert.NotNil(t, spendForm(&spendAnswers{}, "#1 Piling", mustDate(t, "2025-01-06")))
	assert.NotNil(t, epcriskHuhTheme())
	assert.True(t, wizardKeyMap().Quit.Enabled())
}
