package sequence

import (
	"context"

	"buildledger/internal/store"
)

const counterDocument = "sequences"

// Counter remembers the highest number issued per prefix, so deleting the
// newest document never lets its number be handed out again.
type Counter struct {
	doc *store.Document[map[string]int]
}

func NewCounter(db *store.DB) *Counter {
	return &Counter{doc: store.NewDocument[map[string]int](db, counterDocument)}
}

// Issue returns the next number above both the existing numbers and the
// recorded high-water mark, and records it.
func (c *Counter) Issue(ctx context.Context, prefix string, existing []string) (string, error) {
	var issued int
	_, err := c.doc.Upsert(ctx, func(marks *map[string]int) error {
		if *marks == nil {
			*marks = make(map[string]int)
		}
		issued = Max(prefix, existing)
		if hw := (*marks)[prefix]; hw > issued {
			issued = hw
		}
		issued++
		(*marks)[prefix] = issued
		return nil
	})
	if err != nil {
		return "", err
	}
	return Format(prefix, issued), nil
}

// Peek previews what Issue would return without recording anything.
func (c *Counter) Peek(ctx context.Context, prefix string, existing []string) (string, error) {
	n := Max(prefix, existing)
	marks, err := c.doc.Get(ctx)
	if err != nil && !store.IsNotFound(err) {
		return "", err
	}
	if hw := marks[prefix]; hw > n {
		n = hw
	}
	return Format(prefix, n+1), nil
}
