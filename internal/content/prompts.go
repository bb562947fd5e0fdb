// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"

	"slidesmith/internal/ai"
)

const carouselSystemPrompt = `You are an AI creative director at a social media agency. Your job is to turn a raw idea into a compelling, dynamic and viral carousel post. Follow these rules strictly:
1. Slide count: adapt the number of slides to the idea. A short idea needs 5-6 slides, a detailed one may use up to 10. Never produce more than 10 slides.
2. Cover slide: the first slide is the cover. Its title must be very short, punchy and intriguing, ideally 3-5 words. Keep the rest of its text minimal or empty.
3. One slide, one thought: every slide carries exactly one complete idea. Do not overload slides.
4. Brevity: titles stay short. Body text is one or two concise sentences. Remove filler words.
5. Story structure: the carousel tells a story with a hook, a body and a conclusion. The last slide is a call to action or a strong summary.
6. Visuals: for each slide write a vivid, detailed prompt for an abstract background image that matches the mood of the slide.`

const regenerateSystemPrompt = `You are a talented editor who turns ready-made posts into short, structured and visually appealing carousels. You keep the meaning and key points of the source text while adapting it to the carousel format.`

const hashtagSystemPrompt = `You are an SMM and SEO expert. You pick relevant, popular and effective hashtags that maximise the reach of a social media post.`

var slideSchema = &ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"title": {
			Type:        ai.TypeString,
			Description: "A very short, punchy slide title, ideally 3-5 words and at most 8.",
		},
		"content": {
			Type:        ai.TypeString,
			Description: "The slide body: one or two short sentences, at most 30 words. For the first slide this can be a short subtitle or empty.",
		},
		"highlight_keywords": {
			Type:        ai.TypeArray,
			Description: "One to three of the most important words or short phrases from the title or body to highlight.",
			Items:       &ai.Schema{Type: ai.TypeString},
		},
		"image_prompt": {
			Type:        ai.TypeString,
			Description: "A detailed prompt for an abstract background image that matches the slide's mood and topic.",
		},
	},
	Required: []string{"title", "content", "highlight_keywords", "image_prompt"},
}

// carouselSchema wraps the slides in an object; some providers reject a
// bare array at the root.
var carouselSchema = &ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"slides": {
			Type:        ai.TypeArray,
			Description: fmt.Sprintf("The carousel slides in order, between %d and %d items.", 1, maxGenerated),
			Items:       slideSchema,
		},
	},
	Required: []string{"slides"},
}

var hashtagSchema = &ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"hashtags": {
			Type:        ai.TypeArray,
			Description: "Seven to ten hashtags without the leading # symbol.",
			Items:       &ai.Schema{Type: ai.TypeString},
		},
	},
	Required: []string{"hashtags"},
}

func ideaPrompt(idea string, tone Tone) string {
	return fmt.Sprintf("Based on this raw idea: %q, create carousel content. %s Strictly follow the system rules.", idea, tone.Instruction())
}

func regeneratePrompt(title, body string, tone Tone) string {
	return fmt.Sprintf(`Convert the following post into a carousel.

Post title: %q
Post text:
---
%s
---

Tasks:
1. Split the text into logical parts of 5-10 slides.
2. The first slide is a cover built from the post title.
3. Every slide carries one short idea in one or two sentences.
4. The last slide is a call to action or a summary.
5. Write an abstract background image prompt for every slide.

%s`, title, body, tone.Instruction())
}

func hashtagPrompt(text string) string {
	return fmt.Sprintf(`Analyse the following post text and generate 7 to 10 relevant hashtags in the same language as the post. Return them without the # symbol.

Post text:
---
%s
---`, text)
}
