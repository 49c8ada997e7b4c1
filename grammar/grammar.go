// Package grammar holds the Fantasy grammar definition and builds the SLR(1)
// parse table artifact consumed by the shift-reduce engine.
package grammar

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fantasylang/fantasy/parser/lr"
)

//go:embed fantasy.yaml
var fantasyDefinition []byte

var (
	defaultOnce    sync.Once
	defaultGrammar *Grammar
	defaultErr     error
)

type Definition struct {
	Start string           `yaml:"start"`
	Rules []RuleDefinition `yaml:"rules"`
}

type RuleDefinition struct {
	Lhs string   `yaml:"lhs"`
	Rhs []string `yaml:"rhs"`
}

type Rule struct {
	Lhs string
	Rhs []string
}

func (rule Rule) String() string {
	return rule.Lhs + " -> " + strings.Join(rule.Rhs, " ")
}

type Grammar struct {
	Start string
	Rules []Rule

	// In order of first appearance.
	Nonterminals []string
	Terminals    []string // excludes the end marker
}

func (grammar *Grammar) IsNonterminal(symbol string) bool {
	for _, nonterminal := range grammar.Nonterminals {
		if nonterminal == symbol {
			return true
		}
	}
	return false
}

// Default returns the Fantasy grammar embedded in this package.  The result
// is shared and must not be modified.
func Default() (*Grammar, error) {
	defaultOnce.Do(func() {
		defaultGrammar, defaultErr = Parse(fantasyDefinition)
	})
	return defaultGrammar, defaultErr
}

func Parse(content []byte) (*Grammar, error) {
	def := &Definition{}
	err := yaml.Unmarshal(content, def)
	if err != nil {
		return nil, fmt.Errorf("invalid grammar definition: %w", err)
	}
	return New(def)
}

func LoadFile(path string) (*Grammar, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	grammar, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return grammar, nil
}

// New validates the definition.  Every terminal must name a token category.
func New(def *Definition) (*Grammar, error) {
	grammar := &Grammar{
		Start: def.Start,
	}

	seenLhs := map[string]struct{}{}
	for _, rule := range def.Rules {
		if rule.Lhs == "" {
			return nil, fmt.Errorf("rule with empty left-hand side")
		}
		if rule.Lhs == lr.Epsilon {
			return nil, fmt.Errorf("%s cannot be a left-hand side", lr.Epsilon)
		}
		_, ok := lr.SymbolByName(rule.Lhs)
		if ok {
			return nil, fmt.Errorf(
				"left-hand side (%s) is a token category",
				rule.Lhs)
		}
		if len(rule.Rhs) == 0 {
			return nil, fmt.Errorf("rule (%s) has no alternatives", rule.Lhs)
		}

		_, ok = seenLhs[rule.Lhs]
		if !ok {
			seenLhs[rule.Lhs] = struct{}{}
			grammar.Nonterminals = append(grammar.Nonterminals, rule.Lhs)
		}
	}

	_, ok := seenLhs[grammar.Start]
	if !ok {
		return nil, fmt.Errorf("start symbol (%s) has no rule", grammar.Start)
	}

	seenRules := map[string]struct{}{}
	seenTerminals := map[string]struct{}{}
	for _, ruleDef := range def.Rules {
		for _, alternative := range ruleDef.Rhs {
			rule := Rule{
				Lhs: ruleDef.Lhs,
				Rhs: strings.Fields(alternative),
			}

			if len(rule.Rhs) == 0 {
				return nil, fmt.Errorf(
					"empty alternative for %s (use %s)",
					rule.Lhs,
					lr.Epsilon)
			}

			key := rule.String()
			_, ok := seenRules[key]
			if ok {
				return nil, fmt.Errorf("duplicate rule (%s)", key)
			}
			seenRules[key] = struct{}{}

			for _, symbol := range rule.Rhs {
				if symbol == lr.Epsilon {
					if len(rule.Rhs) != 1 {
						return nil, fmt.Errorf(
							"%s must be the only symbol (%s)",
							lr.Epsilon,
							key)
					}
					continue
				}

				_, ok := seenLhs[symbol]
				if ok {
					continue
				}

				id, ok := lr.SymbolByName(symbol)
				if !ok || id == lr.ErrorToken || id == lr.EndMarkerToken {
					return nil, fmt.Errorf(
						"unknown terminal (%s) in rule (%s)",
						symbol,
						key)
				}

				_, ok = seenTerminals[symbol]
				if !ok {
					seenTerminals[symbol] = struct{}{}
					grammar.Terminals = append(grammar.Terminals, symbol)
				}
			}

			grammar.Rules = append(grammar.Rules, rule)
		}
	}

	return grammar, nil
}
