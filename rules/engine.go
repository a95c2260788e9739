package rules

import (
	"embed"
	"encoding/json"
	"fmt"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"io"
	"io/fs"
	"strings"
)

//go:embed *.json
var Embedded embed.FS

func New() *Engine {
	return &Engine{RuleSets: map[string]RuleSet{}}
}

type Engine struct {
	RuleSets map[string]RuleSet
	Rules    []CompiledRule
}

// CapabilityValues are expression strings keyed by setting name, evaluated
// against the Input when the owning rule matches.
type CapabilityValues map[string]string

type CompiledCapabilityValues map[string]*vm.Program

type ResolvedCapabilityValues map[string]any

type Capabilities struct {
	Add    map[string]CapabilityValues
	Remove map[string]CapabilityValues
}

type Actions struct {
	Capabilities Capabilities
}

type CompiledCapabilities struct {
	Add    map[string]CompiledCapabilityValues
	Remove map[string]CompiledCapabilityValues
}

type CompiledActions struct {
	Capabilities CompiledCapabilities
}

type Rule struct {
	Description string
	Filter      string
	Actions     Actions
	Children    []Rule
}

type CompiledRule struct {
	Description string
	Filter      *vm.Program
	Actions     CompiledActions
	Children    []CompiledRule
}

type RuleSet struct {
	Name      string
	DependsOn []string
	Rules     []Rule
}

// Input is the environment rule expressions evaluate against, one middleware
// record at a time.
type Input struct {
	Category   string
	Key        string
	Attributes map[string]any
}

type Output struct {
	Capabilities map[string]ResolvedCapabilityValues
}

func (e *Engine) LoadString(s string) error {
	return e.LoadReader(strings.NewReader(s))
}

func (e *Engine) LoadReader(r io.Reader) error {
	var ruleSets []RuleSet

	if err := json.NewDecoder(r).Decode(&ruleSets); err != nil {
		return fmt.Errorf("ruleset decode: %w", err)
	}

	for _, rs := range ruleSets {
		e.RuleSets[rs.Name] = rs
	}

	return nil
}

func (e *Engine) LoadFS(f fs.FS) error {
	return fs.WalkDir(f, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		file, err := f.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := e.LoadReader(file); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		return nil
	})
}

func (e *Engine) CompileRules() error {
	alreadyLoaded := map[string]bool{}

	for k := range e.RuleSets {
		alreadyLoaded[k] = false
	}

	for k := range e.RuleSets {
		if !alreadyLoaded[k] {
			if err := e.compileRuleSet(alreadyLoaded, []string{}, k); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Engine) compileRuleSet(alreadyLoaded map[string]bool, trail []string, name string) error {
	rs, ok := e.RuleSets[name]
	if !ok {
		return fmt.Errorf("ruleset missing dependency: %s->%s", strings.Join(trail, "->"), name)
	}

	trail = append(trail, rs.Name)

	for _, k := range rs.DependsOn {
		for _, t := range trail {
			if k == t {
				return fmt.Errorf("ruleset circular dependency: %s->%s", strings.Join(trail, "->"), k)
			}
		}

		if !alreadyLoaded[k] {
			if err := e.compileRuleSet(alreadyLoaded, trail, k); err != nil {
				return err
			}
		}
	}

	if cr, err := compileRules(rs.Rules); err != nil {
		return fmt.Errorf("ruleset compilation: %s: %w", strings.Join(trail, "->"), err)
	} else {
		e.Rules = append(e.Rules, cr...)
	}

	alreadyLoaded[name] = true

	return nil
}

func compileRules(rules []Rule) ([]CompiledRule, error) {
	var compiledRules []CompiledRule

	for _, rule := range rules {
		cf, err := expr.Compile(rule.Filter, expr.Env(Input{}))
		if err != nil {
			return nil, fmt.Errorf("filter compilation: %w", err)
		}

		ca, err := compileActions(rule.Actions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rule.Description, err)
		}

		if childCompiledRules, err := compileRules(rule.Children); err != nil {
			return nil, fmt.Errorf("%s: %w", rule.Description, err)
		} else {
			compiledRules = append(compiledRules, CompiledRule{
				Description: rule.Description,
				Filter:      cf,
				Actions:     ca,
				Children:    childCompiledRules,
			})
		}
	}

	return compiledRules, nil
}

func compileActions(a Actions) (CompiledActions, error) {
	ca := CompiledActions{
		Capabilities: CompiledCapabilities{
			Add:    map[string]CompiledCapabilityValues{},
			Remove: map[string]CompiledCapabilityValues{},
		},
	}

	for name, values := range a.Capabilities.Add {
		cv, err := compileCapabilityValues(values)
		if err != nil {
			return CompiledActions{}, fmt.Errorf("%s: %w", name, err)
		}

		ca.Capabilities.Add[name] = cv
	}

	for name, values := range a.Capabilities.Remove {
		cv, err := compileCapabilityValues(values)
		if err != nil {
			return CompiledActions{}, fmt.Errorf("%s: %w", name, err)
		}

		ca.Capabilities.Remove[name] = cv
	}

	return ca, nil
}

func compileCapabilityValues(values CapabilityValues) (CompiledCapabilityValues, error) {
	if values == nil {
		return nil, nil
	}

	cv := CompiledCapabilityValues{}

	for k, src := range values {
		p, err := expr.Compile(src, expr.Env(Input{}))
		if err != nil {
			return nil, fmt.Errorf("value compilation: %s: %w", k, err)
		}

		cv[k] = p
	}

	return cv, nil
}

func (e *Engine) Execute(i Input) (Output, error) {
	o := Output{Capabilities: map[string]ResolvedCapabilityValues{}}

	if err := executeRules(e.Rules, i, &o); err != nil {
		return Output{}, err
	}

	return o, nil
}

func executeRules(rules []CompiledRule, i Input, o *Output) error {
	for _, r := range rules {
		res, err := expr.Run(r.Filter, i)
		if err != nil {
			return fmt.Errorf("%s: filter execution: %w", r.Description, err)
		}

		matched, ok := res.(bool)
		if !ok {
			return fmt.Errorf("%s: filter execution: not a boolean", r.Description)
		}

		if !matched {
			continue
		}

		for name, values := range r.Actions.Capabilities.Add {
			resolved := o.Capabilities[name]
			if resolved == nil {
				resolved = ResolvedCapabilityValues{}
			}

			for k, p := range values {
				v, err := expr.Run(p, i)
				if err != nil {
					return fmt.Errorf("%s: value execution: %s: %w", r.Description, k, err)
				}

				resolved[k] = v
			}

			o.Capabilities[name] = resolved
		}

		for name := range r.Actions.Capabilities.Remove {
			delete(o.Capabilities, name)
		}

		if err := executeRules(r.Children, i, o); err != nil {
			return err
		}
	}

	return nil
}
