package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"signalscout/internal/domain/content"
	"signalscout/internal/domain/trend"
)

// generationSystemPrompt frames every content generation request.
const generationSystemPrompt = "You are an expert content creator who specializes in creating viral, engaging content across social media platforms. You analyze trends and create original content inspired by successful patterns."

// voiceSystemPrompt frames brand voice training requests.
const voiceSystemPrompt = "You are a brand voice analysis expert. Analyze content to identify unique voice characteristics and patterns."

// buildContext renders the shared inspiration block every prompt starts with.
func buildContext(t *trend.Record, brandVoice, targetAudience string, profile *content.BrandVoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inspiration Source:\n")
	fmt.Fprintf(&b, "- Title: %s\n", t.Title)
	fmt.Fprintf(&b, "- Platform: %s\n", t.Platform)
	fmt.Fprintf(&b, "- Topic: %s\n", t.TopicCluster)
	fmt.Fprintf(&b, "- Virality Score: %.1f\n", t.ViralityScore)
	fmt.Fprintf(&b, "- Engagement Rate: %.1f%%\n\n", t.EngagementRate)
	fmt.Fprintf(&b, "Target Audience: %s\n", targetAudience)
	fmt.Fprintf(&b, "Brand Voice: %s\n", brandVoice)

	if profile != nil {
		if characteristics, err := json.Marshal(profile.Characteristics); err == nil {
			fmt.Fprintf(&b, "\nBrand Characteristics: %s\n", characteristics)
		}
	}
	return b.String()
}

// buildPrompt assembles the full user prompt for one content type.
func buildPrompt(contentType content.Type, context string) (string, error) {
	var requirements string
	switch contentType {
	case content.TypeTweet:
		requirements = `Create an original Twitter thread (1-3 tweets) inspired by the above trending content.

Requirements:
- Maximum 280 characters per tweet
- Use engaging hooks and viral patterns
- Include relevant hashtags
- Make it original - do NOT copy the source content
- Focus on the underlying pattern that made it viral
- Match the specified brand voice
- Appeal to the target audience

Format as:
Tweet 1: [content]
Tweet 2: [content] (if applicable)
Tweet 3: [content] (if applicable)`
	case content.TypeLinkedIn:
		requirements = `Create an original LinkedIn post inspired by the above trending content.

Requirements:
- Professional yet engaging tone
- 1300 characters or less
- Include a compelling hook
- Add value to professional network
- Use relevant hashtags (3-5)
- Include a call-to-action
- Make it original - extract the viral pattern, not the content
- Match the specified brand voice

Format as a complete LinkedIn post.`
	case content.TypeScript:
		requirements = `Create an original video script inspired by the above trending content.

Requirements:
- 30-60 second video script
- Strong hook in first 3 seconds
- Clear structure: Hook, Value, Call-to-action
- Include visual cues and timing
- Make it original - focus on the viral elements
- Match the specified brand voice
- Suitable for platforms like TikTok, Instagram Reels, YouTube Shorts

Format:
[HOOK - 0-3 seconds]
[MAIN CONTENT - 3-45 seconds]
[CALL TO ACTION - 45-60 seconds]`
	case content.TypeCarousel:
		requirements = `Create an original Instagram carousel post inspired by the above trending content.

Requirements:
- 5-7 slides
- Each slide should have a clear headline and 2-3 bullet points
- Strong hook on slide 1
- Clear progression and value
- Call-to-action on final slide
- Make it original - extract valuable patterns
- Match the specified brand voice

Format:
Slide 1: [Headline] - [Content]
Slide 2: [Headline] - [Content]
... etc`
	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	return context + "\n" + requirements, nil
}

// buildVoicePrompt assembles the brand voice analysis prompt.
func buildVoicePrompt(brandName, tone string, samples []string) string {
	var b strings.Builder
	b.WriteString("Analyze the following content samples to identify the brand voice characteristics:\n\n")
	b.WriteString("Content Samples:\n")
	for _, sample := range samples {
		fmt.Fprintf(&b, "- %s\n", sample)
	}
	fmt.Fprintf(&b, "\nBrand: %s\n", brandName)
	fmt.Fprintf(&b, "Stated Tone: %s\n\n", tone)
	b.WriteString(`Identify:
1. Writing style patterns
2. Vocabulary preferences
3. Sentence structure
4. Personality traits
5. Key messaging themes
6. Humor style (if any)
7. Technical level
8. Emotional tone patterns

Return as structured analysis.`)
	return b.String()
}
