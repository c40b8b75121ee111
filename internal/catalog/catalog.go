// Package catalog holds the known task names and their default instructions.
package catalog

// Built-in task names.
const (
	RequirementsGathering = "Requirements Gathering"
	UserStoryCreation     = "User Story Creation"
	ScriptGeneration      = "Script Generation"
	TestCaseCreation      = "Test Case Creation"
)

// FallbackInstruction is returned for task names the catalog does not know.
const FallbackInstruction = "Provide a default prompt for AI."

// Definition is a task name with its default instruction.
type Definition struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
}

// Builtins returns the seed definitions in display order.
func Builtins() []Definition {
	return []Definition{
		{Name: RequirementsGathering, Instruction: "Generate a list of requirements to test the website"},
		{Name: UserStoryCreation, Instruction: "Create selenium based user stories for the website based on the gathered requirements."},
		{Name: ScriptGeneration, Instruction: "Write selenium Python scripts based on the user stories for the website functionality."},
		{Name: TestCaseCreation, Instruction: "Create test cases based on the selenium scripts for the website."},
	}
}

// Catalog maps task names to instructions, preserving insertion order.
// It is not safe for concurrent use.
type Catalog struct {
	order        []string
	instructions map[string]string
}

// New returns a catalog seeded with the built-in definitions.
func New() *Catalog {
	c := &Catalog{instructions: make(map[string]string)}
	for _, d := range Builtins() {
		c.Register(d.Name, d.Instruction)
	}
	return c
}

// Register adds a definition or overwrites the instruction of an existing one.
func (c *Catalog) Register(name, instruction string) {
	if _, ok := c.instructions[name]; !ok {
		c.order = append(c.order, name)
	}
	c.instructions[name] = instruction
}

// Instruction returns the registered instruction or FallbackInstruction.
func (c *Catalog) Instruction(name string) string {
	if text, ok := c.instructions[name]; ok {
		return text
	}
	return FallbackInstruction
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.instructions[name]
	return ok
}

// Names returns registered task names in insertion order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// List returns all definitions in insertion order.
func (c *Catalog) List() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, Definition{Name: name, Instruction: c.instructions[name]})
	}
	return out
}
