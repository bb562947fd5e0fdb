// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import "strings"

// Tone is a named style preset passed to the generation service.
type Tone string

const (
	ToneBold          Tone = "bold"
	ToneProfessional  Tone = "professional"
	ToneProvocative   Tone = "provocative"
	ToneInspirational Tone = "inspirational"
	ToneWitty         Tone = "witty"
	ToneMinimal       Tone = "minimal"
	ToneEmpathetic    Tone = "empathetic"
	ToneEnergetic     Tone = "energetic"
)

// DefaultTone is used for unknown or empty tone keys.
const DefaultTone = ToneBold

// ToneInfo describes a tone for pickers and prompt building.
type ToneInfo struct {
	Key         Tone   `json:"key"`
	Label       string `json:"label"`
	Instruction string `json:"-"`
}

// Tones lists the presets in picker order.
var Tones = []ToneInfo{
	{ToneBold, "Bold", "The tone must be bold, modern and inspiring."},
	{ToneProfessional, "Professional", "Use a strict, businesslike and persuasive tone suitable for LinkedIn."},
	{ToneProvocative, "Provocative", "Create provocative, thought-provoking content that sparks discussion."},
	{ToneInspirational, "Inspirational", "The tone must be motivating, positive and inspire action."},
	{ToneWitty, "Witty", "Use witty, ironic and clever humour."},
	{ToneMinimal, "Minimal", "The text must be extremely concise, clear and minimalistic."},
	{ToneEmpathetic, "Empathetic", "Speak to the audience with empathy, understanding and support."},
	{ToneEnergetic, "Energetic", "The tone must be energetic, dynamic and full of enthusiasm."},
}

var toneAliases = map[string]Tone{
	"daring":       ToneBold,
	"minimalistic": ToneMinimal,
}

// ParseTone maps a tone key (case-insensitive, aliases accepted) to a Tone.
// Unknown keys resolve to DefaultTone.
func ParseTone(s string) Tone {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := toneAliases[key]; ok {
		return t
	}
	for _, info := range Tones {
		if string(info.Key) == key {
			return info.Key
		}
	}
	return DefaultTone
}

// Instruction returns the natural-language style instruction for t.
func (t Tone) Instruction() string {
	for _, info := range Tones {
		if info.Key == t {
			return info.Instruction
		}
	}
	return Tones[0].Instruction
}
