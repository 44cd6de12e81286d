// Package catalog holds the static reference data shipped with the service:
// questionnaire topics, the default policy list and emission factors.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/esg-responder/internal/domain/emissions"
	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
	"github.com/bryanwahyu/esg-responder/internal/domain/readiness"
)

//go:embed topics.yaml
var topicsYAML []byte

//go:embed policies.yaml
var policiesYAML []byte

//go:embed emission_factors.yaml
var factorsYAML []byte

// Catalog is loaded once and shared read-only.
type Catalog struct {
	Topics   readiness.TopicMapping
	Policies []esg.Policy
	Factors  emissions.Factors
}

// PolicyTemplate is one entry of the default policy list.
type PolicyTemplate struct {
	Name     string       `yaml:"name"`
	Category string       `yaml:"category"`
	Priority esg.Priority `yaml:"priority"`
}

// Load parses the embedded catalog files.
func Load() (*Catalog, error) {
	var topics struct {
		Topics []readiness.Topic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(topicsYAML, &topics); err != nil {
		return nil, fmt.Errorf("parse topics: %w", err)
	}

	var policies struct {
		Policies []PolicyTemplate `yaml:"policies"`
	}
	if err := yaml.Unmarshal(policiesYAML, &policies); err != nil {
		return nil, fmt.Errorf("parse policies: %w", err)
	}

	var factors struct {
		Factors []emissions.Factor `yaml:"factors"`
	}
	if err := yaml.Unmarshal(factorsYAML, &factors); err != nil {
		return nil, fmt.Errorf("parse emission factors: %w", err)
	}

	c := &Catalog{
		Topics:  readiness.NewTopicMapping(topics.Topics),
		Factors: emissions.NewFactors(factors.Factors),
	}
	for _, p := range policies.Policies {
		c.Policies = append(c.Policies, esg.Policy{
			Name:     p.Name,
			Category: p.Category,
			Priority: p.Priority,
			Status:   esg.PolicyNotStarted,
			Origin:   esg.OriginSeeded,
		})
	}
	return c, nil
}

// MustLoad is Load for program start-up, where the embedded files are known good.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}
