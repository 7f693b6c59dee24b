package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used by tests and the seeder dry-run.
// Documents are normalized through JSON so matching and decoding behave the
// same as the Postgres implementation.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]memoryDoc
}

type memoryDoc struct {
	id   string
	body map[string]any
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]memoryDoc)}
}

func (s *MemoryStore) Insert(ctx context.Context, collection, id string, doc any) error {
	body, err := normalize(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.collections[collection] {
		if existing.id == id {
			return ErrDuplicate
		}
	}
	s.collections[collection] = append(s.collections[collection], memoryDoc{id: id, body: body})
	return nil
}

func (s *MemoryStore) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	normalizedFilter, err := normalize(map[string]any(filter))
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if matches(doc.body, normalizedFilter) {
			return decodeDoc(doc.body, out)
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Find(ctx context.Context, collection string, filter Filter, opts FindOptions, out any) error {
	normalizedFilter, err := normalize(map[string]any(filter))
	if err != nil {
		return err
	}

	// The matched bodies are sorted and marshaled while the read lock is
	// held: UpdateOne mutates body maps in place, so no reference may
	// escape the lock.
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []map[string]any{}
	for _, doc := range s.collections[collection] {
		if matches(doc.body, normalizedFilter) {
			matched = append(matched, doc.body)
		}
	}

	if opts.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			if opts.Descending {
				return lessByField(matched[j], matched[i], opts.SortBy)
			}
			return lessByField(matched[i], matched[j], opts.SortBy)
		})
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	docs := make([]json.RawMessage, 0, len(matched))
	for _, body := range matched {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		docs = append(docs, raw)
	}
	return decodeSlice(docs, out)
}

func (s *MemoryStore) UpdateOne(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error) {
	normalizedFilter, err := normalize(map[string]any(filter))
	if err != nil {
		return 0, err
	}
	normalizedPatch, err := normalize(map[string]any(patch))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.collections[collection] {
		if matches(doc.body, normalizedFilter) {
			for k, v := range normalizedPatch {
				s.collections[collection][i].body[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	normalizedFilter, err := normalize(map[string]any(filter))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc.body, normalizedFilter) {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	normalizedFilter, err := normalize(map[string]any(filter))
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, doc := range s.collections[collection] {
		if matches(doc.body, normalizedFilter) {
			count++
		}
	}
	return count, nil
}

// normalize round-trips a value through JSON so that struct documents and
// map filters compare with identical types (float64 numbers, nil, strings).
func normalize(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return body, nil
}

func decodeDoc(body map[string]any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func matches(body, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := body[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func lessByField(a, b map[string]any, field string) bool {
	av, bv := a[field], b[field]
	switch x := av.(type) {
	case string:
		y, _ := bv.(string)
		return x < y
	case float64:
		y, _ := bv.(float64)
		return x < y
	default:
		return false
	}
}
