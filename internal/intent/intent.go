// Package intent classifies a user message into one of a closed set of
// intents and extracts lightweight entities from it. Classification is
// rule-based: an ordered list of keyword groups scanned against the
// lowercased text, first hit wins.
package intent

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the classified purpose of a message.
type Kind string

const (
	Command    Kind = "command"
	Greeting   Kind = "greeting"
	Farewell   Kind = "farewell"
	TariffInfo Kind = "tariff_info"
	ModelInfo  Kind = "model_info"
	Portfolio  Kind = "portfolio_request"
	Schedule   Kind = "schedule_request"
	Contact    Kind = "contact_request"
	Thanks     Kind = "thanks"
	Unknown    Kind = "unknown"
)

// CommandPrefix marks bot commands; they bypass pattern scanning entirely.
const CommandPrefix = "/"

//go:embed rules.yaml
var rulesYAML []byte

// Group is one ordered rule group: the intent it produces and the text
// fragments that trigger it.
type Group struct {
	Intent   Kind     `yaml:"intent"`
	Patterns []string `yaml:"patterns"`
}

type ruleFile struct {
	Groups   []Group           `yaml:"groups"`
	Fallback map[Kind][]string `yaml:"fallback"`
}

// Classifier scans a fixed ordered rule set. Safe for concurrent use
// once built.
type Classifier struct {
	groups      []Group
	tariffWords []string
	modelWords  []string
}

// NewClassifier loads the embedded rule set.
func NewClassifier() (*Classifier, error) {
	var rules ruleFile
	if err := yaml.Unmarshal(rulesYAML, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse intent rules: %w", err)
	}
	if len(rules.Groups) == 0 {
		return nil, fmt.Errorf("intent rules define no groups")
	}

	return &Classifier{
		groups:      rules.Groups,
		tariffWords: rules.Fallback[TariffInfo],
		modelWords:  rules.Fallback[ModelInfo],
	}, nil
}

// Classify returns exactly one Kind for any input, including empty text.
// A command prefix short-circuits everything; otherwise the ordered groups
// are scanned and the first group with any matching fragment wins. When no
// group matches, the tariff/model fallback keyword sets are tried, in that
// order, before giving up with Unknown.
func (c *Classifier) Classify(text string) Kind {
	if strings.HasPrefix(strings.TrimSpace(text), CommandPrefix) {
		return Command
	}

	lower := strings.ToLower(text)
	for _, group := range c.groups {
		for _, pattern := range group.Patterns {
			if strings.Contains(lower, pattern) {
				return group.Intent
			}
		}
	}

	for _, word := range c.tariffWords {
		if strings.Contains(lower, word) {
			return TariffInfo
		}
	}
	for _, word := range c.modelWords {
		if strings.Contains(lower, word) {
			return ModelInfo
		}
	}

	return Unknown
}
