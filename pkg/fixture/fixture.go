// Package fixture loads YAML fixtures that configure a fake client: account
// settings, response overrides per resource method, and validation rules for
// custom resources. Fixtures keep scenario data out of test code and let the
// twindial server binary be seeded from a file.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// Group mirrors twindial.Alternative in fixture form.
type Group struct {
	Purpose string   `yaml:"purpose"`
	Fields  []string `yaml:"fields"`
}

// RuleSpec declares a validation rule for one resource method. Field names
// are wire names.
type RuleSpec struct {
	Required []string `yaml:"required"`
	AnyOf    []Group  `yaml:"any_of"`
}

// Fixture is a parsed fixture file.
type Fixture struct {
	AccountSID string                    `yaml:"account_sid"`
	AuthToken  string                    `yaml:"auth_token"`
	Responses  map[string]map[string]any `yaml:"responses"`
	Rules      map[string]RuleSpec       `yaml:"rules"`
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses fixture YAML.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	for key, spec := range f.Rules {
		if len(spec.Required) == 0 && len(spec.AnyOf) == 0 {
			return nil, fmt.Errorf("fixture rule %q declares no constraints", key)
		}
		for i, g := range spec.AnyOf {
			if len(g.Fields) == 0 {
				return nil, fmt.Errorf("fixture rule %q group %d has no fields", key, i)
			}
		}
	}
	return &f, nil
}

// Apply installs the fixture's responses and rules on an existing client.
func (f *Fixture) Apply(c *twindial.Client) {
	for key, payload := range f.Responses {
		c.ConfigureResponse(key, twindial.Payload(payload))
	}
	for key, spec := range f.Rules {
		rule := twindial.Rule{Required: spec.Required}
		for _, g := range spec.AnyOf {
			rule.AnyOf = append(rule.AnyOf, twindial.Alternative{
				Purpose: g.Purpose,
				Fields:  g.Fields,
			})
		}
		c.RegisterRule(key, rule)
	}
}

// NewClient builds a fake client from the fixture's account settings and
// applies the fixture to it.
func (f *Fixture) NewClient() *twindial.Client {
	c := twindial.New(twindial.Config{
		AccountSID: f.AccountSID,
		AuthToken:  f.AuthToken,
	})
	f.Apply(c)
	return c
}
