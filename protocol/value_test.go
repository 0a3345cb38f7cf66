// Copyright 2020 WolkAbout Technology s.r.o.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueToString(t *testing.T) {
	assert.Equal(t, "25.6", valueToString(25.6))
	assert.Equal(t, "25", valueToString(25))
	assert.Equal(t, "true", valueToString(true))
	assert.Equal(t, "on", valueToString("on"))
	assert.Equal(t, "", valueToString(nil))
	assert.Equal(t, "1,2,3", valueToString([]int{1, 2, 3}))
	assert.Equal(t, "0.5,-1,9.81", valueToString([]float64{0.5, -1, 9.81}))
	assert.Equal(t, "true,false", valueToString([]bool{true, false}))
	assert.Equal(t, "a,b", valueToString([]string{"a", "b"}))
}

func TestConfigurationValueToString(t *testing.T) {
	assert.Equal(t, `line1\nline2`, configurationValueToString("line1\nline2"))
	assert.Equal(t, `line1\nline2`, configurationValueToString("line1\r\nline2"))
	assert.Equal(t, `say \"hi\"`, configurationValueToString(`say "hi"`))
	assert.Equal(t, "1,2,3", configurationValueToString([]int64{1, 2, 3}))
}

func TestParseConfigurationValue(t *testing.T) {
	assert.Equal(t, "60", parseConfigurationValue("60"))
	assert.Equal(t, []int64{1, 2, 3}, parseConfigurationValue("1,2,3"))
	assert.Equal(t, []float64{0.5, 1.5}, parseConfigurationValue("0.5,1.5"))
	assert.Equal(t, []string{"a", "b"}, parseConfigurationValue("a,b"))
	assert.Equal(t, true, parseConfigurationValue(true))
	assert.Equal(t, float64(2), parseConfigurationValue(float64(2)))
}
