package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimationSpeed_Multiplier(t *testing.T) {
	assert.Equal(t, 1.5, SpeedSlow.Multiplier())
	assert.Equal(t, 1.0, SpeedNormal.Multiplier())
	assert.Equal(t, 0.7, SpeedFast.Multiplier())
	assert.Equal(t, 1.0, AnimationSpeed("warp").Multiplier())
}

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in     string
		want   AnimationSpeed
		wantOK bool
	}{
		{"slow", SpeedSlow, true},
		{"normal", SpeedNormal, true},
		{"fast", SpeedFast, true},
		{"Fast", SpeedNormal, false},
		{"", SpeedNormal, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSpeed(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSpeedForSkill(t *testing.T) {
	assert.Equal(t, SpeedSlow, SpeedForSkill(SkillBeginner))
	assert.Equal(t, SpeedNormal, SpeedForSkill(SkillIntermediate))
	assert.Equal(t, SpeedFast, SpeedForSkill(SkillAdvanced))
	assert.Equal(t, SpeedNormal, SpeedForSkill(""))
}
