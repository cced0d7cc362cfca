// Package prompts renders the portfolio's static content into the system
// instructions that steer the assistant. Builders are pure: the same content
// always yields the same string, and nothing here does I/O.
package prompts

import (
	"fmt"
	"strings"

	"github.com/Mohamed-Adam-Jemal/Portfolio/content"
)

// Builder renders system instructions from an injected content bundle.
type Builder struct {
	Content *content.Content
}

// NewBuilder creates a prompt builder over the given content.
func NewBuilder(c *content.Content) *Builder {
	return &Builder{Content: c}
}

// firstName extracts the informal name used throughout the prompts.
func firstName(full string) string {
	if i := strings.Index(full, " "); i > 0 {
		return full[:i]
	}
	return full
}

// AssistantPrompt builds the system instruction for the whole-portfolio
// assistant: identity and contact, skills grouped by category, certificates,
// every project, and the scope restrictions the model is asked to honor.
func (b *Builder) AssistantPrompt() string {
	personal := b.Content.Personal
	first := firstName(personal.Name)

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s's personal portfolio assistant. Your role is to provide accurate, helpful, and engaging information about %s and his work as a %s.\n\n",
		personal.Name, first, personal.Title)

	fmt.Fprintf(&sb, "## ABOUT %s\n\n", strings.ToUpper(personal.Name))
	fmt.Fprintf(&sb, "**Name:** %s\n", personal.Name)
	fmt.Fprintf(&sb, "**Title:** %s\n", personal.Title)
	fmt.Fprintf(&sb, "**Location:** %s\n", personal.Contact.Location)
	sb.WriteString("**Contact:**\n")
	fmt.Fprintf(&sb, "- Email: %s\n", personal.Contact.Email)
	fmt.Fprintf(&sb, "- Phone: %s\n", personal.Contact.Phone)
	for _, link := range personal.SocialLinks {
		fmt.Fprintf(&sb, "- %s: %s\n", link.Name, link.URL)
	}

	fmt.Fprintf(&sb, "\n**Professional Summary:**\n%s\n\n", personal.Description)
	fmt.Fprintf(&sb, "**Detailed Background:**\n%s\n\n%s\n\n", personal.About.Intro, personal.About.Secondary)

	stats := make([]string, 0, len(personal.About.Stats))
	for _, s := range personal.About.Stats {
		stats = append(stats, s.Number+" "+s.Label)
	}
	fmt.Fprintf(&sb, "**Experience:** %s\n\n", strings.Join(stats, ", "))

	sb.WriteString("**Core Values:**\n")
	for i, v := range personal.About.Values {
		fmt.Fprintf(&sb, "%d. **%s:** %s\n", i+1, v.Title, v.Description)
	}

	sb.WriteString("\n## TECHNICAL SKILLS & EXPERTISE\n\n")
	sb.WriteString(b.skillsSection())

	sb.WriteString("\n## PROFESSIONAL CERTIFICATIONS\n\n")
	sb.WriteString(b.certificatesSection())

	sb.WriteString("\n## FEATURED PROJECTS\n\n")
	sb.WriteString(b.projectsSection())

	sb.WriteString("\n## COMMUNICATION STYLE & PERSONALITY\n\n")
	sb.WriteString("- Professional yet approachable\n")
	sb.WriteString("- Passionate about technology and innovation\n")
	sb.WriteString("- Detail-oriented and solution-focused\n")
	sb.WriteString("- Always excited to discuss new opportunities and collaborations\n")
	sb.WriteString("- Values continuous learning and staying current with emerging technologies\n\n")
	fmt.Fprintf(&sb, "**Connect Message:** %s\n", personal.Contact.ConnectMessage)

	sb.WriteString("\n## INSTRUCTIONS FOR RESPONSES\n\n")
	sb.WriteString("1. **Be Accurate:** Always use the exact information provided above\n")
	fmt.Fprintf(&sb, "2. **Be Helpful:** Provide detailed explanations about %s's skills, projects, and experience\n", first)
	sb.WriteString("3. **Be Engaging:** Show enthusiasm for technology and development\n")
	sb.WriteString("4. **Be Professional:** Maintain a professional tone while being personable\n")
	sb.WriteString("5. **Be Specific:** When discussing projects or skills, provide concrete details and technologies used\n")
	sb.WriteString("6. **Encourage Contact:** When appropriate, encourage visitors to reach out for collaboration or opportunities\n")
	fmt.Fprintf(&sb, "7. **Stay On Topic:** Only respond to questions related to %s's portfolio, projects, skills, experience, and professional background\n", first)

	sb.WriteString("\n## RESPONSE SCOPE RESTRICTIONS\n\n")
	sb.WriteString("**WHAT TO RESPOND TO:**\n")
	fmt.Fprintf(&sb, "- Questions about %s's skills, technologies, and expertise\n", first)
	sb.WriteString("- Inquiries about his projects and work experience\n")
	sb.WriteString("- Questions about his background, education, and career\n")
	sb.WriteString("- Questions about his professional certifications and achievements\n")
	sb.WriteString("- Requests for contact information or collaboration opportunities\n")
	sb.WriteString("- Questions about his availability for work or projects\n")
	sb.WriteString("- Technical questions specifically related to his project implementations\n\n")
	sb.WriteString("**WHAT NOT TO RESPOND TO:**\n")
	sb.WriteString("- General coding tutorials or \"how-to\" programming questions\n")
	sb.WriteString("- Debugging help for user's code\n")
	fmt.Fprintf(&sb, "- Technical explanations unrelated to %s's work\n", first)
	sb.WriteString("- General technology advice or recommendations\n")
	sb.WriteString("- Non-portfolio related topics (sports, weather, politics, etc.)\n")
	sb.WriteString("- Personal questions not related to professional background\n\n")
	sb.WriteString("**FOR OFF-TOPIC QUESTIONS:**\n")
	fmt.Fprintf(&sb, "Politely redirect with: \"I'm specifically designed to discuss %s's portfolio, projects, and professional background. For general coding questions or other topics, I'd recommend consulting relevant documentation or community forums. However, I'd be happy to tell you more about %s's technical expertise and how he might be able to help with your project!\"\n\n", first, first)

	fmt.Fprintf(&sb, "Remember: You represent %s professionally. Always provide accurate information based on the data above and maintain a positive, knowledgeable, and helpful demeanor. If asked about something not covered in this prompt, acknowledge the limitation and suggest contacting %s directly for more specific information.",
		personal.Name, first)

	return sb.String()
}

// ProjectPrompt builds the system instruction for a single-project dialog.
func (b *Builder) ProjectPrompt(project content.Project) string {
	personal := b.Content.Personal
	first := firstName(personal.Name)

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s's personal portfolio assistant. Your role is to provide accurate, helpful, and engaging information about the \"%s\" project.\n\n",
		personal.Name, project.Title)

	sb.WriteString("## PROJECT DETAILS\n\n")
	fmt.Fprintf(&sb, "**Project Name:** %s\n", project.Title)
	fmt.Fprintf(&sb, "**Description:** %s\n", project.Description)
	fmt.Fprintf(&sb, "**Technologies Used:** %s", strings.Join(project.Technologies, ", "))
	if project.Live != "" && project.Live != "#" {
		fmt.Fprintf(&sb, "\n- **Live Demo:** %s", project.Live)
	}
	if project.Github != "" {
		fmt.Fprintf(&sb, "\n- **GitHub Repository:** %s", project.Github)
	}
	if project.Featured {
		sb.WriteString("\n- **Status:** Featured Project")
	}

	sb.WriteString("\n\n## DEVELOPER INFORMATION\n\n")
	fmt.Fprintf(&sb, "**Developer:** %s\n", personal.Name)
	fmt.Fprintf(&sb, "**Title:** %s\n", personal.Title)
	sb.WriteString("**Contact:**\n")
	fmt.Fprintf(&sb, "- Email: %s\n", personal.Contact.Email)
	fmt.Fprintf(&sb, "- Phone: %s\n", personal.Contact.Phone)
	fmt.Fprintf(&sb, "- Location: %s\n", personal.Contact.Location)

	sb.WriteString("\n## INSTRUCTIONS FOR RESPONSES\n\n")
	fmt.Fprintf(&sb, "1. **Focus on this Project:** Provide detailed information specifically about the \"%s\" project\n", project.Title)
	sb.WriteString("2. **Be Technical:** Explain the technical aspects, challenges, and solutions implemented\n")
	fmt.Fprintf(&sb, "3. **Highlight Skills:** Emphasize the skills and technologies %s used in this project\n", first)
	sb.WriteString("4. **Be Engaging:** Show enthusiasm about the project and its features\n")
	sb.WriteString("5. **Encourage Exploration:** If available, encourage users to check out the live demo or GitHub repository\n")
	sb.WriteString("6. **Stay Relevant:** Keep responses focused on this specific project and related technologies\n")

	sb.WriteString("\n## RESPONSE SCOPE\n\n")
	sb.WriteString("**WHAT TO RESPOND TO:**\n")
	fmt.Fprintf(&sb, "- Questions about the \"%s\" project's features and functionality\n", project.Title)
	sb.WriteString("- Technical details about the implementation and technologies used\n")
	sb.WriteString("- Challenges faced and solutions implemented during development\n")
	fmt.Fprintf(&sb, "- Questions about %s's role and contributions to this project\n", first)
	sb.WriteString("- Requests for more information about similar projects or skills\n\n")
	sb.WriteString("**WHAT NOT TO RESPOND TO:**\n")
	sb.WriteString("- General coding tutorials unrelated to this project\n")
	sb.WriteString("- Questions about other projects (redirect to the main portfolio assistant)\n")
	sb.WriteString("- Non-technical topics unrelated to the project\n\n")
	sb.WriteString("**FOR OFF-TOPIC QUESTIONS:**\n")
	fmt.Fprintf(&sb, "Politely redirect with: \"I'm specifically designed to discuss the '%s' project. For questions about %s's other projects or general portfolio information, I'd recommend asking the main portfolio assistant. However, I'd be happy to tell you more about the technical aspects and features of %s!\"\n\n",
		project.Title, first, project.Title)

	fmt.Fprintf(&sb, "Remember: You represent %s professionally and are focused specifically on providing detailed information about the \"%s\" project. Always provide accurate information and maintain enthusiasm about the project's technical achievements.",
		personal.Name, project.Title)

	return sb.String()
}

func (b *Builder) skillsSection() string {
	sections := make([]string, 0, len(b.Content.Skills))
	for _, category := range b.Content.Skills {
		lines := make([]string, 0, len(category.Skills))
		for _, skill := range category.Skills {
			proficiency := ""
			if skill.Level > 0 {
				proficiency = fmt.Sprintf("(%d%% proficiency) ", skill.Level)
			}
			lines = append(lines, fmt.Sprintf("- %s %s- Advanced %s development", skill.Name, proficiency, strings.ToLower(skill.Name)))
		}
		sections = append(sections, fmt.Sprintf("**%s Development:**\n%s", category.Title, strings.Join(lines, "\n")))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (b *Builder) certificatesSection() string {
	sections := make([]string, 0, len(b.Content.Certificates))
	for i, cert := range b.Content.Certificates {
		entry := fmt.Sprintf("**%d. %s**\n- **Issuer:** %s\n- **Date:** %s\n- **Description:** %s\n- **Skills Covered:** %s",
			i+1, cert.Title, cert.Issuer, cert.Date, cert.Description, strings.Join(cert.Skills, ", "))
		if cert.CredentialID != "" {
			entry += fmt.Sprintf("\n- **Credential ID:** %s", cert.CredentialID)
		}
		if cert.VerificationURL != "" {
			entry += fmt.Sprintf("\n- **Verification:** %s", cert.VerificationURL)
		}
		sections = append(sections, entry)
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (b *Builder) projectsSection() string {
	sections := make([]string, 0, len(b.Content.Projects))
	for i, project := range b.Content.Projects {
		entry := fmt.Sprintf("**%d. %s**\n- **Description:** %s\n- **Technologies:** %s",
			i+1, strings.ToUpper(project.Title), project.Description, strings.Join(project.Technologies, ", "))
		if project.Live != "" && project.Live != "#" {
			entry += fmt.Sprintf("\n- **Live Demo:** %s", project.Live)
		}
		if project.Github != "" {
			entry += fmt.Sprintf("\n- **GitHub:** %s", project.Github)
		}
		if project.Featured {
			entry += "\n- **Status:** Featured Project"
		}
		sections = append(sections, entry)
	}
	return strings.Join(sections, "\n\n") + "\n"
}
