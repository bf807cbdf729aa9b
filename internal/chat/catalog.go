package chat

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ticketdesk-backend/internal/types"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// KeywordRule maps any of Words (substring, case-insensitive) to Intent.
type KeywordRule struct {
	Intent types.Intent `yaml:"intent"`
	Words  []string     `yaml:"words"`
}

type Menu struct {
	Message string         `yaml:"message"`
	Options []types.Option `yaml:"options"`
}

// Catalog is the closed configuration table behind the resolver and the
// main menu: quit phrases, button aliases, keyword rules and fixed copy.
type Catalog struct {
	QuitPhrases []string                `yaml:"quit_phrases"`
	Buttons     map[string]types.Intent `yaml:"buttons"`
	Keywords    []KeywordRule           `yaml:"keywords"`
	Menu        Menu                    `yaml:"menu"`
	GateLabels  []string                `yaml:"gate_labels"`
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, q := range c.QuitPhrases {
		c.QuitPhrases[i] = strings.ToLower(strings.TrimSpace(q))
	}
	for i := range c.Keywords {
		for j, w := range c.Keywords[i].Words {
			c.Keywords[i].Words[j] = strings.ToLower(w)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a catalog from path, or returns the built-in one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return ParseCatalog(defaultCatalogYAML)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(b)
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in chat catalog is invalid: %v", err))
	}
	return c
}

func (c *Catalog) Validate() error {
	if len(c.QuitPhrases) == 0 {
		return fmt.Errorf("catalog: no quit phrases")
	}
	for value, in := range c.Buttons {
		if !in.Known() || in == types.IntentUnknown {
			return fmt.Errorf("catalog: button %q maps to unknown intent %q", value, in)
		}
	}
	for _, rule := range c.Keywords {
		if !rule.Intent.Known() || rule.Intent == types.IntentUnknown || rule.Intent == types.IntentEndChat {
			return fmt.Errorf("catalog: keyword rule has invalid intent %q", rule.Intent)
		}
		if len(rule.Words) == 0 {
			return fmt.Errorf("catalog: keyword rule for %s has no words", rule.Intent)
		}
	}
	if strings.TrimSpace(c.Menu.Message) == "" || len(c.Menu.Options) == 0 {
		return fmt.Errorf("catalog: main menu is empty")
	}
	return nil
}

// IsQuit reports whether message is one of the global quit phrases.
func (c *Catalog) IsQuit(message string) bool {
	m := strings.ToLower(strings.TrimSpace(message))
	if m == "" {
		return false
	}
	for _, q := range c.QuitPhrases {
		if m == q {
			return true
		}
	}
	return false
}

// button looks up a direct button value. Matching is case-sensitive.
func (c *Catalog) button(value string) (types.Intent, bool) {
	in, ok := c.Buttons[value]
	return in, ok
}

// keyword returns the intent of the first rule with a word contained in message.
func (c *Catalog) keyword(message string) (types.Intent, bool) {
	m := strings.ToLower(message)
	if strings.TrimSpace(m) == "" {
		return types.IntentUnknown, false
	}
	for _, rule := range c.Keywords {
		if containsAny(m, rule.Words) {
			return rule.Intent, true
		}
	}
	return types.IntentUnknown, false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
