// Package googleforms loads live Google Forms through the Forms API.
package googleforms

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/forms/v1"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/google"
	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FormSource = (*Source)(nil)

// SourceName identifies this form source.
const SourceName = "googleforms"

// Choice question types returned by the Forms API.
const (
	choiceRadio    = "RADIO"
	choiceCheckbox = "CHECKBOX"
	choiceDropDown = "DROP_DOWN"
)

// Config configures the Google Forms source.
type Config struct {
	// TokenProvider supplies the OAuth2 bearer token.
	TokenProvider driven.TokenProvider

	// Endpoint overrides the API root. Empty uses the public endpoint.
	Endpoint string

	// HTTPClient is the base client for requests. Nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// Source loads Google Forms.
type Source struct {
	cfg     Config
	limiter *google.RateLimiter
}

// New creates a Google Forms source.
func New(cfg Config) *Source {
	return &Source{
		cfg:     cfg,
		limiter: google.NewRateLimiter(google.ServiceForms),
	}
}

// Name returns the source identifier.
func (s *Source) Name() string {
	return SourceName
}

// Load fetches the form with the given ID or URL.
func (s *Source) Load(ctx context.Context, ref string) (*domain.Form, error) {
	formID := ParseFormID(ref)
	if formID == "" {
		return nil, fmt.Errorf("%w: google form ID or edit URL is required", domain.ErrInvalidInput)
	}
	if s.cfg.TokenProvider == nil {
		return nil, fmt.Errorf("%w: google access token not set", domain.ErrFormSourceUnavailable)
	}

	ctx = google.WithBaseClient(ctx, s.cfg.HTTPClient)
	svc, err := google.NewFormsService(ctx, google.NewTokenSource(ctx, s.cfg.TokenProvider), s.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("create forms service: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("Fetching Google Form %s", formID)
	raw, err := svc.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		s.limiter.Observe(err)
		return nil, fmt.Errorf("get form %s: %w", formID, google.WrapError(err))
	}

	return convertForm(raw), nil
}

// convertForm maps API items to questions in display order.
// Items that are not answerable questions are skipped.
func convertForm(raw *forms.Form) *domain.Form {
	form := &domain.Form{
		ID:     raw.FormId,
		Source: SourceName,
	}
	if raw.Info != nil {
		form.Title = raw.Info.Title
		if form.Title == "" {
			form.Title = raw.Info.DocumentTitle
		}
	}

	for _, item := range raw.Items {
		q, ok := convertItem(item)
		if !ok {
			continue
		}
		form.Questions = append(form.Questions, q)
	}
	return form
}

func convertItem(item *forms.Item) (domain.Question, bool) {
	if item == nil || item.QuestionItem == nil || item.QuestionItem.Question == nil {
		return domain.Question{}, false
	}
	question := item.QuestionItem.Question

	id := question.QuestionId
	if id == "" {
		id = item.ItemId
	}
	text := strings.TrimSpace(item.Title)

	q, ok := convertQuestion(item.ItemId, id, text, question)
	q.Required = question.Required
	return q, ok
}

func convertQuestion(itemID, id, text string, question *forms.Question) (domain.Question, bool) {
	switch {
	case question.ChoiceQuestion != nil:
		fieldType, ok := choiceFieldType(question.ChoiceQuestion.Type)
		if !ok {
			logger.Debug("Skipping item %s: choice type %q", itemID, question.ChoiceQuestion.Type)
			return domain.Question{}, false
		}
		var options []string
		for _, opt := range question.ChoiceQuestion.Options {
			if opt == nil || opt.IsOther {
				continue
			}
			options = append(options, strings.TrimSpace(opt.Value))
		}
		return domain.NewQuestion(id, text, fieldType, options...), true

	case question.TextQuestion != nil:
		if question.TextQuestion.Paragraph {
			return domain.NewQuestion(id, text, domain.FieldParagraph), true
		}
		return domain.NewQuestion(id, text, domain.FieldShortAnswer), true

	default:
		logger.Debug("Skipping item %s: unsupported question kind", itemID)
		return domain.Question{}, false
	}
}

func choiceFieldType(choiceType string) (domain.FieldType, bool) {
	switch choiceType {
	case choiceRadio:
		return domain.FieldMultipleChoice, true
	case choiceCheckbox:
		return domain.FieldCheckbox, true
	case choiceDropDown:
		return domain.FieldDropdown, true
	default:
		return "", false
	}
}

// ParseFormID extracts the form ID from a bare ID or an edit URL such as
// https://docs.google.com/forms/d/<id>/edit.
func ParseFormID(ref string) string {
	ref = strings.TrimSpace(ref)
	if _, rest, ok := strings.Cut(ref, "/forms/d/"); ok {
		if strings.HasPrefix(rest, "e/") {
			// Responder links carry a publish ID the API does not accept.
			return ""
		}
		id, _, _ := strings.Cut(rest, "/")
		id, _, _ = strings.Cut(id, "?")
		return id
	}
	return ref
}
