// internal/governance/implementation.go
package governance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"growingtogether/pkg/docstore"
)

const (
	rulesCollection     = "rules"
	ruleAcksCollection  = "rule_acks"
	documentsCollection = "site_documents"
)

type service struct {
	store docstore.Store
	now   func() time.Time
	newID func() string
}

func newService(store docstore.Store) *service {
	return &service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *service) CreateRule(ctx context.Context, creatorID string, input RuleInput) (*Rule, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidRule)
	}

	rule := Rule{
		ID:        s.newID(),
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Category:  input.Category,
		CreatedBy: creatorID,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}

	if err := s.store.Insert(ctx, rulesCollection, rule.ID, rule); err != nil {
		return nil, fmt.Errorf("persisting rule: %w", err)
	}
	return &rule, nil
}

func (s *service) ListRules(ctx context.Context) ([]Rule, error) {
	var rules []Rule
	err := s.store.Find(ctx, rulesCollection, docstore.Filter{}, docstore.FindOptions{
		SortBy: "created_at",
	}, &rules)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	return rules, nil
}

func (s *service) AcknowledgeRule(ctx context.Context, ruleID, userID string) (*RuleAck, error) {
	err := s.store.FindOne(ctx, rulesCollection, docstore.Filter{"id": ruleID}, &Rule{})
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading rule: %w", err)
	}

	// Idempotency: return the existing acknowledgement when present.
	var existing RuleAck
	err = s.store.FindOne(ctx, ruleAcksCollection, docstore.Filter{
		"rule_id": ruleID,
		"user_id": userID,
	}, &existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("checking acknowledgement: %w", err)
	}

	ack := RuleAck{
		ID:             s.newID(),
		RuleID:         ruleID,
		UserID:         userID,
		AcknowledgedAt: s.now(),
	}
	if err := s.store.Insert(ctx, ruleAcksCollection, ack.ID, ack); err != nil {
		return nil, fmt.Errorf("persisting acknowledgement: %w", err)
	}
	return &ack, nil
}

func (s *service) Acknowledgements(ctx context.Context, userID string) ([]RuleAck, error) {
	var acks []RuleAck
	err := s.store.Find(ctx, ruleAcksCollection, docstore.Filter{"user_id": userID}, docstore.FindOptions{}, &acks)
	if err != nil {
		return nil, fmt.Errorf("listing acknowledgements: %w", err)
	}
	return acks, nil
}

func (s *service) CreateDocument(ctx context.Context, uploaderID string, input DocumentInput) (*Document, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidDoc)
	}

	doc := Document{
		ID:         s.newID(),
		Title:      strings.TrimSpace(input.Title),
		Category:   input.Category,
		FileURL:    input.FileURL,
		UploadedBy: uploaderID,
		CreatedAt:  s.now(),
	}

	if err := s.store.Insert(ctx, documentsCollection, doc.ID, doc); err != nil {
		return nil, fmt.Errorf("persisting document: %w", err)
	}
	return &doc, nil
}

func (s *service) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := s.store.Find(ctx, documentsCollection, docstore.Filter{}, docstore.FindOptions{
		SortBy:     "created_at",
		Descending: true,
	}, &docs)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}
