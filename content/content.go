package content

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var dataFiles embed.FS

// Personal holds the identity and contact information rendered into prompts
// and served to the site.
type Personal struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	About       About  `json:"about"`
	Contact     Contact `json:"contact"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

type About struct {
	Intro     string  `json:"intro"`
	Secondary string  `json:"secondary"`
	Stats     []Stat  `json:"stats"`
	Values    []Value `json:"values"`
}

type Stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

type Value struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Contact struct {
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ConnectMessage string `json:"connectMessage"`
}

type SocialLink struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

// Project is one portfolio project. Order is the stable identifier used by
// the per-project chat endpoint.
type Project struct {
	Order        int      `json:"order"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Github       string   `json:"github,omitempty"`
	Live         string   `json:"live,omitempty"`
	Featured     bool     `json:"featured"`
}

type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level,omitempty"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type SkillCategory struct {
	Title  string  `json:"title"`
	Skills []Skill `json:"skills"`
}

type Certificate struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Issuer          string   `json:"issuer"`
	Date            string   `json:"date"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	CredentialID    string   `json:"credentialId"`
	VerificationURL string   `json:"verificationUrl"`
}

// Assistant holds the chat widget copy: the welcome message shown before any
// exchange and the quick questions offered to the visitor.
type Assistant struct {
	InitialMessage string   `json:"initialMessage"`
	QuickQuestions []string `json:"quickQuestions"`
}

// Content is the full static content bundle. It is loaded once at startup and
// passed read-only into whatever needs it; nothing mutates it afterwards.
type Content struct {
	Personal     Personal
	Projects     []Project
	Skills       []SkillCategory
	Certificates []Certificate
	Assistant    Assistant
}

// Load decodes the embedded content data. Malformed data is a build problem,
// so any error here should abort startup.
func Load() (*Content, error) {
	var c Content

	if err := loadJSON("data/personal.json", &c.Personal); err != nil {
		return nil, err
	}

	var projects struct {
		Projects []Project `json:"projects"`
	}
	if err := loadJSON("data/projects.json", &projects); err != nil {
		return nil, err
	}
	c.Projects = projects.Projects

	var skills struct {
		Categories []SkillCategory `json:"categories"`
	}
	if err := loadJSON("data/skills.json", &skills); err != nil {
		return nil, err
	}
	c.Skills = skills.Categories

	var certs struct {
		Certificates []Certificate `json:"certificates"`
	}
	if err := loadJSON("data/certificates.json", &certs); err != nil {
		return nil, err
	}
	c.Certificates = certs.Certificates

	if err := loadJSON("data/assistant.json", &c.Assistant); err != nil {
		return nil, err
	}

	return &c, nil
}

// MustLoad is Load for main(); it panics on malformed embedded data.
func MustLoad() *Content {
	c, err := Load()
	if err != nil {
		panic("failed to load content data: " + err.Error())
	}
	return c
}

// ProjectByOrder returns the project with the given order, or false if no
// such project exists.
func (c *Content) ProjectByOrder(order int) (Project, bool) {
	for _, p := range c.Projects {
		if p.Order == order {
			return p, true
		}
	}
	return Project{}, false
}

func loadJSON(path string, v interface{}) error {
	raw, err := dataFiles.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read embedded content file '%s': %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to unmarshal '%s': %w", path, err)
	}
	return nil
}
