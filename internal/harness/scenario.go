package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario: a sequence of storefront
// operations executed against a fresh session, then assertions over the
// final state and the last query result.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps is the operation sequence. Each step produces one trace event.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final session state and query results.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one storefront operation.
type Step struct {
	// Op selects the operation:
	// login, logout, cart.add, cart.remove, cart.inc, cart.dec,
	// cart.clear, cart.checkout, fav.add, query.
	Op string `yaml:"op"`

	// Identifier is the login identifier (login only).
	Identifier string `yaml:"identifier,omitempty"`

	// Book is the catalog id the operation targets (cart.* and fav.add).
	Book string `yaml:"book,omitempty"`

	// Query pipeline inputs (query only).
	Keyword string `yaml:"keyword,omitempty"`
	Sort    string `yaml:"sort,omitempty"`
	InStock bool   `yaml:"in_stock,omitempty"`
}

// Step operation constants.
const (
	OpLogin        = "login"
	OpLogout       = "logout"
	OpCartAdd      = "cart.add"
	OpCartRemove   = "cart.remove"
	OpCartInc      = "cart.inc"
	OpCartDec      = "cart.dec"
	OpCartClear    = "cart.clear"
	OpCartCheckout = "cart.checkout"
	OpFavAdd       = "fav.add"
	OpQuery        = "query"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so a typo like "assertion:" fails loudly instead of silently
// weakening the scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, st *Step) error {
	switch st.Op {
	case OpLogin:
		if st.Identifier == "" {
			return fmt.Errorf("steps[%d]: identifier is required for login", index)
		}
	case OpCartAdd, OpCartRemove, OpCartInc, OpCartDec, OpFavAdd:
		if st.Book == "" {
			return fmt.Errorf("steps[%d]: book is required for %s", index, st.Op)
		}
	case OpLogout, OpCartClear, OpCartCheckout, OpQuery:
		// no required fields
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}
	return nil
}
