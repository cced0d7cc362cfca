package prompts

import (
	"strings"
	"testing"

	"github.com/Mohamed-Adam-Jemal/Portfolio/content"
)

func testContent() *content.Content {
	return &content.Content{
		Personal: content.Personal{
			Name:        "Mohamed Adam Jemal",
			Title:       "Full-Stack & IoT Developer",
			Description: "Builds web and IoT systems.",
			About: content.About{
				Intro:     "Developer based in Sfax.",
				Secondary: "Worked on research projects.",
				Stats:     []content.Stat{{Number: "3+", Label: "Years of experience"}},
				Values:    []content.Value{{Title: "Curiosity", Description: "Always learning."}},
			},
			Contact: content.Contact{
				Email:          "mohamed.adam.jemal@gmail.com",
				Phone:          "+216 55 555 555",
				Location:       "Sfax, Tunisia",
				ConnectMessage: "Reach out any time.",
			},
			SocialLinks: []content.SocialLink{
				{Name: "GitHub", URL: "https://github.com/Mohamed-Adam-Jemal"},
			},
		},
		Projects: []content.Project{
			{
				Order:        1,
				Title:        "FarmWatch",
				Description:  "Connected-agriculture dashboard.",
				Technologies: []string{"React", "MongoDB"},
				Github:       "https://github.com/Mohamed-Adam-Jemal/FarmWatch",
				Live:         "https://farmwatch-demo.vercel.app",
				Featured:     true,
			},
		},
		Skills: []content.SkillCategory{
			{
				Title: "Backend",
				Skills: []content.Skill{
					{Name: "Go", Level: 75},
					{Name: "MongoDB"},
				},
			},
		},
		Certificates: []content.Certificate{
			{
				Title:           "IoT Specialization",
				Issuer:          "Coursera",
				Date:            "2024",
				Description:     "Embedded systems series.",
				Skills:          []string{"MQTT"},
				CredentialID:    "COURSERA-IOT-2024",
				VerificationURL: "https://coursera.org/verify/COURSERA-IOT-2024",
			},
		},
	}
}

func TestAssistantPrompt_Deterministic(t *testing.T) {
	builder := NewBuilder(testContent())
	first := builder.AssistantPrompt()
	second := builder.AssistantPrompt()
	if first != second {
		t.Error("AssistantPrompt must be deterministic for unchanged content")
	}
}

func TestAssistantPrompt_RendersAllSections(t *testing.T) {
	prompt := NewBuilder(testContent()).AssistantPrompt()

	for _, want := range []string{
		"Mohamed Adam Jemal",
		"mohamed.adam.jemal@gmail.com",
		"+216 55 555 555",
		"Sfax, Tunisia",
		"https://github.com/Mohamed-Adam-Jemal",
		"## TECHNICAL SKILLS & EXPERTISE",
		"**Backend Development:**",
		"- Go (75% proficiency)",
		"## PROFESSIONAL CERTIFICATIONS",
		"IoT Specialization",
		"COURSERA-IOT-2024",
		"## FEATURED PROJECTS",
		"**1. FARMWATCH**",
		"React, MongoDB",
		"## RESPONSE SCOPE RESTRICTIONS",
		"**WHAT NOT TO RESPOND TO:**",
		"3+ Years of experience",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Assistant prompt missing %q", want)
		}
	}
}

func TestAssistantPrompt_UsesFirstName(t *testing.T) {
	prompt := NewBuilder(testContent()).AssistantPrompt()
	if !strings.Contains(prompt, "Mohamed's portfolio, projects, and professional background") {
		t.Error("Scope restriction should address the developer by first name")
	}
}

func TestProjectPrompt_RendersProjectFields(t *testing.T) {
	c := testContent()
	prompt := NewBuilder(c).ProjectPrompt(c.Projects[0])

	for _, want := range []string{
		`"FarmWatch" project`,
		"Connected-agriculture dashboard.",
		"React, MongoDB",
		"**Live Demo:** https://farmwatch-demo.vercel.app",
		"**GitHub Repository:** https://github.com/Mohamed-Adam-Jemal/FarmWatch",
		"**Status:** Featured Project",
		"**Developer:** Mohamed Adam Jemal",
		"## RESPONSE SCOPE",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Project prompt missing %q", want)
		}
	}
}

func TestProjectPrompt_OmitsAbsentLinks(t *testing.T) {
	c := testContent()
	project := content.Project{
		Order:        2,
		Title:        "Bare",
		Description:  "No links.",
		Technologies: []string{"Go"},
		Live:         "#",
	}
	prompt := NewBuilder(c).ProjectPrompt(project)

	if strings.Contains(prompt, "Live Demo") {
		t.Error("Placeholder live link must not be rendered")
	}
	if strings.Contains(prompt, "GitHub Repository") {
		t.Error("Absent GitHub link must not be rendered")
	}
	if strings.Contains(prompt, "Featured Project") {
		t.Error("Non-featured project must not be marked featured")
	}
}

func TestPrompts_DifferPerContext(t *testing.T) {
	c := testContent()
	builder := NewBuilder(c)
	if builder.AssistantPrompt() == builder.ProjectPrompt(c.Projects[0]) {
		t.Error("Whole-portfolio and project prompts must differ")
	}
}
