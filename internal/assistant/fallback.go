package assistant

import (
	"fmt"
	"strings"
)

const demoNote = "**Note:** This is a demo response. Please configure your AI API keys for real intelligence analysis."

// fallbackRule maps message keywords to a canned briefing
type fallbackRule struct {
	keywords []string
	template string
}

// Checked in order; the first rule with a matching keyword wins.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"ukraine", "russia"},
		template: `🔴 **INTELLIGENCE BRIEFING: UKRAINE-RUSSIA CONFLICT**

**Current Status:** Active military operations ongoing in eastern regions
**Key Developments:**
• International military aid continues to flow to Ukrainian forces
• Diplomatic efforts focus on humanitarian corridors
• Economic sanctions remain in effect against Russian entities

**Assessment:** Situation remains highly volatile with potential for escalation. Recommend continued monitoring of border regions and supply line activities.

` + demoNote,
	},
	{
		keywords: []string{"china", "taiwan"},
		template: `📊 **INTELLIGENCE BRIEFING: CHINA-TAIWAN TENSIONS**

**Current Status:** Elevated military posturing in Taiwan Strait
**Key Developments:**
• Increased PLA naval activities near Taiwan territorial waters
• Semiconductor export controls affecting regional tech supply chains
• International diplomatic pressure for peaceful resolution

**Assessment:** Tensions remain high but within manageable parameters. Monitor for unusual military buildup or policy changes.

` + demoNote,
	},
	{
		keywords: []string{"middle east", "israel"},
		template: `⚡ **INTELLIGENCE BRIEFING: MIDDLE EAST SITUATION**

**Current Status:** Multiple regional flashpoints requiring monitoring
**Key Developments:**
• Ongoing security operations in contested territories
• International mediation efforts continue
• Regional power dynamics shifting with new alliances

**Assessment:** Complex multi-actor situation with potential for rapid escalation. Recommend close monitoring of all parties.

` + demoNote,
	},
	{
		keywords: []string{"cyber", "hack"},
		template: `🔒 **CYBERSECURITY INTELLIGENCE BRIEFING**

**Current Status:** Elevated cyber threat environment globally
**Key Developments:**
• State-sponsored APT groups targeting critical infrastructure
• Ransomware attacks on government and private sector increasing
• Attribution analysis ongoing for recent major incidents

**Assessment:** Cyber threats pose significant risk to national security. Enhanced defensive measures recommended.

` + demoNote,
	},
	{
		keywords: []string{"economic", "sanctions"},
		template: `💰 **ECONOMIC INTELLIGENCE BRIEFING**

**Current Status:** Global economic pressures affecting geopolitical stability
**Key Developments:**
• Sanctions regimes impacting international trade flows
• Energy market volatility affecting regional alliances
• Supply chain disruptions creating new dependencies

**Assessment:** Economic factors increasingly driving geopolitical decisions. Monitor for policy shifts.

` + demoNote,
	},
}

const genericTemplate = `🤖 **AI ANALYSIS**

I understand you're asking about "%s". 

**Available Analysis Areas:**
• Global conflict zones and tension areas
• Cybersecurity threats and incidents
• Economic sanctions and trade impacts
• Military movements and exercises
• Diplomatic developments

Please specify which area you'd like me to focus on, or ask about a specific country or region for a detailed intelligence briefing.

**Note:** This is a demo response. To enable full AI capabilities, please configure your API keys in the environment variables (COHERE_API_KEY or OPENAI_API_KEY).`

// FallbackResponse returns the canned answer for message. Equal input gives equal output.
func FallbackResponse(message string) string {
	lower := strings.ToLower(message)

	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.template
			}
		}
	}

	return fmt.Sprintf(genericTemplate, message)
}
