package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-docschema/pkg/model"
)

func stringValidator(field model.Field) func(string) error {
	minLength := -1
	if rule, ok := field.Rule(model.ValidationRuleMinLength); ok {
		if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
			minLength = n
		}
	}
	return func(answer string) error {
		if answer == "" {
			if field.Required {
				return fmt.Errorf("%w: value is required", ErrInvalidAnswer)
			}
			return nil
		}
		if minLength >= 0 && len([]rune(answer)) < minLength {
			return fmt.Errorf("%w: must be at least %d characters", ErrInvalidAnswer, minLength)
		}
		return nil
	}
}

func numberValidator(field model.Field) func(string) error {
	bound := func(kind string) (float64, bool) {
		rule, ok := field.Rule(kind)
		if !ok {
			return 0, false
		}
		value, err := strconv.ParseFloat(rule.Params["value"], 64)
		return value, err == nil
	}
	lo, hasMin := bound(model.ValidationRuleMin)
	hi, hasMax := bound(model.ValidationRuleMax)

	return func(answer string) error {
		trimmed := strings.TrimSpace(answer)
		if trimmed == "" {
			if field.Required {
				return fmt.Errorf("%w: value is required", ErrInvalidAnswer)
			}
			return nil
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidAnswer, trimmed)
		}
		if hasMin && value < lo {
			return fmt.Errorf("%w: must be at least %s", ErrInvalidAnswer, formatNumber(lo))
		}
		if hasMax && value > hi {
			return fmt.Errorf("%w: must be at most %s", ErrInvalidAnswer, formatNumber(hi))
		}
		return nil
	}
}

func numberHelp(field model.Field) string {
	parts := make([]string, 0, 3)
	if field.Description != "" {
		parts = append(parts, field.Description)
	}
	if unit := field.UIHints["unit"]; unit != "" {
		parts = append(parts, "unit: "+unit)
	}
	lo, hasMin := field.Rule(model.ValidationRuleMin)
	hi, hasMax := field.Rule(model.ValidationRuleMax)
	if hasMin && hasMax {
		parts = append(parts, fmt.Sprintf("between %s and %s", lo.Params["value"], hi.Params["value"]))
	}
	return strings.Join(parts, "; ")
}

func formatNumber(value any) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
