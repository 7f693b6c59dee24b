// internal/governance/service.go
package governance

import (
	"context"
	"errors"

	"growingtogether/pkg/docstore"
)

var (
	ErrRuleNotFound = errors.New("rule not found")
	ErrInvalidRule  = errors.New("invalid rule")
	ErrInvalidDoc   = errors.New("invalid document")
)

// Service manages site rules, rule acknowledgements and document records.
type Service interface {
	CreateRule(ctx context.Context, creatorID string, input RuleInput) (*Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	// AcknowledgeRule records that the user has read the rule. Repeated
	// acknowledgements are idempotent.
	AcknowledgeRule(ctx context.Context, ruleID, userID string) (*RuleAck, error)
	Acknowledgements(ctx context.Context, userID string) ([]RuleAck, error)

	CreateDocument(ctx context.Context, uploaderID string, input DocumentInput) (*Document, error)
	ListDocuments(ctx context.Context) ([]Document, error)
}

func NewService(store docstore.Store) Service {
	return newService(store)
}
