package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowWaterRule(t *testing.T) {
	advice := AssessDay(3, nil)
	if assert.Len(t, advice, 1) {
		assert.Equal(t, "water_low", advice[0].Code)
	}

	assert.Empty(t, AssessDay(4, nil))
}

func TestRiceRule(t *testing.T) {
	two := []string{"Jollof RICE", "fried rice"}
	assert.Empty(t, AssessDay(10, two))

	three := append(two, "Rice cake")
	advice := AssessDay(10, three)
	if assert.Len(t, advice, 1) {
		assert.Equal(t, "rice_repeat", advice[0].Code)
	}
}

func TestRuleOrderIsFixed(t *testing.T) {
	advice := AssessDay(0, []string{"rice", "rice", "rice"})
	if assert.Len(t, advice, 2) {
		assert.Equal(t, "water_low", advice[0].Code)
		assert.Equal(t, "rice_repeat", advice[1].Code)
	}
}

func TestAdviceMessages(t *testing.T) {
	msgs := AdviceMessages(2, nil)
	if assert.Len(t, msgs, 1) {
		assert.Contains(t, msgs[0], "water intake today was low")
	}
}
