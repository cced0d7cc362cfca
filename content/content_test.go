package content

import "testing"

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if c.Personal.Name == "" || c.Personal.Contact.Email == "" {
		t.Error("Personal data incomplete")
	}
	if len(c.Projects) == 0 {
		t.Error("Expected at least one project")
	}
	if len(c.Skills) == 0 {
		t.Error("Expected at least one skill category")
	}
	if len(c.Certificates) == 0 {
		t.Error("Expected at least one certificate")
	}
	if c.Assistant.InitialMessage == "" {
		t.Error("Expected a welcome message for the chat widget")
	}
	if len(c.Assistant.QuickQuestions) == 0 {
		t.Error("Expected quick questions for the chat widget")
	}
}

func TestProjectByOrder(t *testing.T) {
	c := MustLoad()

	first, ok := c.ProjectByOrder(1)
	if !ok {
		t.Fatal("Expected project with order 1")
	}
	if first.Title == "" || len(first.Technologies) == 0 {
		t.Errorf("Project fields incomplete: %+v", first)
	}

	if _, ok := c.ProjectByOrder(999); ok {
		t.Error("Expected no project for unknown order")
	}
}
