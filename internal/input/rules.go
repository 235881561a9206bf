// Package input implements the live validation rules attached to admin
// input fields: character limits, numeric-only, email format, and regexp
// patterns.
package input

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"

	"hospihub/adminkit/internal/dom"
)

var validate = validator.New()

// Rule transforms or rejects a field value. Sanitizing rules rewrite the
// value and never fail; validating rules leave it untouched and may fail.
type Rule interface {
	Apply(value string) (string, error)
}

type ruleFunc func(string) (string, error)

func (f ruleFunc) Apply(value string) (string, error) { return f(value) }

// CharLimit truncates the value to at most n characters.
func CharLimit(n int) Rule {
	return ruleFunc(func(v string) (string, error) {
		runes := []rune(v)
		if len(runes) > n {
			return string(runes[:n]), nil
		}
		return v, nil
	})
}

var nonDigits = regexp.MustCompile(`\D`)

// NumericOnly strips every non-digit character.
func NumericOnly() Rule {
	return ruleFunc(func(v string) (string, error) {
		return nonDigits.ReplaceAllString(v, ""), nil
	})
}

// EmailFormat rejects values that are not a valid email address. Empty
// values pass; presence is the job of required-field validation.
func EmailFormat() Rule {
	return ruleFunc(func(v string) (string, error) {
		if v == "" {
			return v, nil
		}
		if err := validate.Var(v, "email"); err != nil {
			return v, fmt.Errorf("%q is not a valid email address", v)
		}
		return v, nil
	})
}

// Pattern rejects values that do not match re in full.
func Pattern(re *regexp.Regexp) Rule {
	return ruleFunc(func(v string) (string, error) {
		if v == "" || re.MatchString(v) {
			return v, nil
		}
		return v, fmt.Errorf("value does not match required format")
	})
}

// RuleSet is the ordered rules of one field.
type RuleSet struct {
	Field string
	Rules []Rule
}

// Apply runs the rules in order: sanitizers rewrite the value, the first
// validation failure stops the chain.
func (rs RuleSet) Apply(value string) (string, error) {
	var err error
	for _, r := range rs.Rules {
		value, err = r.Apply(value)
		if err != nil {
			return value, err
		}
	}
	return value, nil
}

// Attach builds rule sets for every element matching sel from its data
// attributes: data-maxlength, data-numeric, data-email, data-pattern.
// Elements with an unparsable attribute are skipped.
func Attach(doc *dom.Document, sel string) []RuleSet {
	var sets []RuleSet

	doc.With(sel, func(s *goquery.Selection) {
		s.Each(func(_ int, field *goquery.Selection) {
			name, _ := field.Attr("name")
			if name == "" {
				return
			}
			// Sanitizers run before the length cap, mirroring live typing.
			var rules []Rule
			if _, ok := field.Attr("data-numeric"); ok {
				rules = append(rules, NumericOnly())
			}
			if raw, ok := field.Attr("data-maxlength"); ok {
				n, err := strconv.Atoi(strings.TrimSpace(raw))
				if err != nil || n < 0 {
					return
				}
				rules = append(rules, CharLimit(n))
			}
			if _, ok := field.Attr("data-email"); ok {
				rules = append(rules, EmailFormat())
			}
			if raw, ok := field.Attr("data-pattern"); ok {
				re, err := regexp.Compile(raw)
				if err != nil {
					return
				}
				rules = append(rules, Pattern(re))
			}
			if len(rules) > 0 {
				sets = append(sets, RuleSet{Field: name, Rules: rules})
			}
		})
	})

	return sets
}
