// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guideline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/validate"
)

const (
	// FieldSections is the validation detail field of the section list.
	FieldSections = "sections"

	maxSections     = 50
	maxTitleLength  = 200
	maxRuleLength   = 1000
	maxRulesPerItem = 100
)

// Service implements guidelines business logic.
type Service struct {
	repository Repository
}

// NewService constructs a new guidelines [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Get returns the guidelines, creating the defaults on first read.
func (service *Service) Get(context context.Context) (*Guidelines, error) {
	guidelines, err := service.repository.Get(context, DefaultSections())
	if err != nil {
		return nil, fmt.Errorf("guideline_service_get_failed: %w", err)
	}
	return guidelines, nil
}

/*
Replace overwrites every section for the superadmin.

Titles and rules are trimmed; blank rules are dropped. A nil sections
list is rejected, an empty one clears the document.

Returns:
  - *Guidelines: The stored document
  - error: Forbidden or ValidationError
*/
func (service *Service) Replace(context context.Context, actor access.Actor, sections []Section) (*Guidelines, error) {
	if err := access.Require(access.CanEditGuidelines(actor.Role), "Only the superadmin can edit guidelines"); err != nil {
		return nil, err
	}

	if sections == nil {
		return nil, validate.RequiredError(FieldSections, "Invalid sections data")
	}

	cleaned := make([]Section, 0, len(sections))
	validator := &validate.Validator{}
	validator.Custom(FieldSections, len(sections) > maxSections, fmt.Sprintf("At most %d sections", maxSections))

	for i, section := range sections {
		field := fmt.Sprintf("%s[%d]", FieldSections, i)
		title := strings.TrimSpace(section.Title)
		validator.Required(field+".title", title).MaxLen(field+".title", title, maxTitleLength)

		rules := make([]string, 0, len(section.Rules))
		for _, rule := range section.Rules {
			if rule = strings.TrimSpace(rule); rule != "" {
				validator.MaxLen(field+".rules", rule, maxRuleLength)
				rules = append(rules, rule)
			}
		}
		validator.Custom(field+".rules", len(rules) > maxRulesPerItem, fmt.Sprintf("At most %d rules", maxRulesPerItem))

		cleaned = append(cleaned, Section{Title: title, Rules: rules})
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	guidelines, err := service.repository.Replace(context, cleaned, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("guideline_service_replace_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "guidelines_replaced",
		slog.String("actor_id", actor.ID),
		slog.Int("sections", len(cleaned)),
	)
	return guidelines, nil
}
