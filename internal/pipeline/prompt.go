package pipeline

import (
	"fmt"

	"github.com/metalagman/agentflow/internal/catalog"
)

// SeleniumScriptPrompt is sent for every Script Generation step.
const SeleniumScriptPrompt = `
Write a Python Selenium script that automates logging in to a website. The script should:
1. Open the website using Selenium.
2. Find the username and password fields by their CSS selectors.
3. Input a username and password.
4. Click the login button.
5. Wait for the login process to complete and verify that the user is redirected to the homepage.
`

const testCasePromptFormat = `
Generate test cases based on the following Selenium script. The test cases should include:
1. Test Case Description
2. Test Steps (e.g., Open the browser, Input username and password, etc.)
3. Expected Results (e.g., User is successfully logged in and redirected to the homepage)

Selenium Script:
%s
`

const (
	requirementsPromptPrefix = "Extract the key requirements from this text: "
	previousResultPrefix     = "Use the previous result and create new content based on that: "
)

// Source tells where a step gets its model input from.
type Source int

// Step sources.
const (
	SourceModel Source = iota
	SourceFetch
)

func (s Source) String() string {
	if s == SourceFetch {
		return "fetch"
	}
	return "model"
}

// PromptInput is everything a step prompt depends on.
// An empty Previous means there is no prior result.
type PromptInput struct {
	Task        string
	Instruction string
	URL         string
	Previous    string
}

// Plan is the resolved input of one step. For SourceFetch the prompt is
// derived from the fetched content with RequirementsPrompt.
type Plan struct {
	Source Source
	Prompt string
	URL    string
}

// BuildPrompt resolves the step input.
func BuildPrompt(in PromptInput) Plan {
	switch {
	case in.Task == catalog.RequirementsGathering && in.URL != "":
		return Plan{Source: SourceFetch, URL: in.URL}
	case in.Task == catalog.ScriptGeneration:
		return Plan{Source: SourceModel, Prompt: SeleniumScriptPrompt}
	case in.Task == catalog.TestCaseCreation:
		return Plan{Source: SourceModel, Prompt: TestCasePrompt(in.Previous)}
	case in.Previous != "":
		return Plan{Source: SourceModel, Prompt: previousResultPrefix + in.Previous}
	default:
		return Plan{Source: SourceModel, Prompt: in.Instruction}
	}
}

// TestCasePrompt embeds script into the test case template.
func TestCasePrompt(script string) string {
	return fmt.Sprintf(testCasePromptFormat, script)
}

// RequirementsPrompt asks the model to extract requirements from page text.
func RequirementsPrompt(content string) string {
	return requirementsPromptPrefix + content
}
